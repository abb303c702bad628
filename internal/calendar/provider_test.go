package calendar

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"
)

// fakeAuthority returns a canned answer or error.
type fakeAuthority struct {
	day   AuthorityDay
	err   error
	calls int
}

func (f *fakeAuthority) Lookup(ctx context.Context, isoDate string) (AuthorityDay, error) {
	f.calls++
	return f.day, f.err
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

func TestBuiltin_Scenarios(t *testing.T) {
	tests := []struct {
		name       string
		date       time.Time
		wantSeason Season
		wantColor  Color
		wantCycle  SundayCycle
		wantYear   int
	}{
		{"third Sunday after Epiphany 2026", date(2026, time.January, 25), SeasonEpiphany, ColorGreen, CycleA, 2025},
		{"Christmas Day 2025", date(2025, time.December, 25), SeasonChristmas, ColorWhite, CycleA, 2025},
		{"Advent Sunday 2025", date(2025, time.November, 30), SeasonAdvent, ColorPurple, CycleA, 2025},
		{"Good Friday 2026", date(2026, time.April, 3), SeasonLent, ColorPurple, CycleA, 2025},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Builtin(tt.date)

			if got.Season != tt.wantSeason {
				t.Errorf("Season = %s, want %s", got.Season, tt.wantSeason)
			}
			if got.Color != tt.wantColor {
				t.Errorf("Color = %s, want %s", got.Color, tt.wantColor)
			}
			if got.SundayCycle != tt.wantCycle {
				t.Errorf("SundayCycle = %s, want %s", got.SundayCycle, tt.wantCycle)
			}
			if got.LiturgicalYear != tt.wantYear {
				t.Errorf("LiturgicalYear = %d, want %d", got.LiturgicalYear, tt.wantYear)
			}
			if got.Source != SourceBuiltin {
				t.Errorf("Source = %s, want %s", got.Source, SourceBuiltin)
			}
		})
	}
}

func TestBuiltin_EasterDateIsCalendarYear(t *testing.T) {
	// Before Advent 2025 the liturgical year is 2024, but Easter is still 2025's.
	got := Builtin(date(2025, time.November, 1))

	if !got.EasterDate.Equal(date(2025, time.April, 20)) {
		t.Errorf("EasterDate = %s, want 2025-04-20", FormatDate(got.EasterDate))
	}
	if got.LiturgicalYear != 2024 {
		t.Errorf("LiturgicalYear = %d, want 2024", got.LiturgicalYear)
	}
}

func TestAuthorityResolver_TranslatesVocabulary(t *testing.T) {
	authority := &fakeAuthority{day: AuthorityDay{Season: "before Lent", WeekNo: 3, Name: "3rd Sunday before Lent"}}
	r := NewAuthorityResolver(authority)

	got, err := r.Resolve(context.Background(), date(2026, time.January, 25))
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if got.Season != SeasonEpiphany {
		t.Errorf("Season = %s, want %s", got.Season, SeasonEpiphany)
	}
	if got.DayName != "The Third Sunday after the Epiphany" {
		t.Errorf("DayName = %q, want %q", got.DayName, "The Third Sunday after the Epiphany")
	}
	if got.Color != ColorGreen {
		t.Errorf("Color = %s, want %s", got.Color, ColorGreen)
	}
	if got.Source != SourceAuthority {
		t.Errorf("Source = %s, want %s", got.Source, SourceAuthority)
	}
}

func TestAuthorityResolver_EpiphanyFeast(t *testing.T) {
	authority := &fakeAuthority{day: AuthorityDay{Season: "Epiphany", WeekNo: 0, Name: "The Epiphany"}}

	got, err := NewAuthorityResolver(authority).Resolve(context.Background(), date(2026, time.January, 6))
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got.DayName != "The Epiphany" {
		t.Errorf("DayName = %q, want %q", got.DayName, "The Epiphany")
	}
}

func TestAuthorityResolver_SeasonAfterPentecost(t *testing.T) {
	tests := []struct {
		season string
		weekNo int
		want   string
	}{
		{"before Advent", 1, "Proper 2 (The Season after Pentecost)"},
		{"before Advent", 4, "Proper 5 (The Season after Pentecost)"},
		{"Ordinary Time", 1, "Proper 2 (The Season after Pentecost)"},
		{"Ordinary Time", 2, "Proper 3 (The Season after Pentecost)"},
		{"Trinity", 5, "Proper 6 (The Season after Pentecost)"},
		{"Trinity", 0, "The Season after Pentecost"},
	}

	for _, tt := range tests {
		authority := &fakeAuthority{day: AuthorityDay{Season: tt.season, WeekNo: tt.weekNo}}

		got, err := NewAuthorityResolver(authority).Resolve(context.Background(), date(2026, time.November, 1))
		if err != nil {
			t.Fatalf("Resolve(%s, %d) error = %v", tt.season, tt.weekNo, err)
		}
		if got.Season != SeasonPentecost {
			t.Errorf("Resolve(%s, %d).Season = %s, want %s", tt.season, tt.weekNo, got.Season, SeasonPentecost)
		}
		if got.DayName != tt.want {
			t.Errorf("Resolve(%s, %d).DayName = %q, want %q", tt.season, tt.weekNo, got.DayName, tt.want)
		}
	}
}

func TestAuthorityResolver_UnmappedSeason(t *testing.T) {
	authority := &fakeAuthority{day: AuthorityDay{Season: "Kingdomtide", WeekNo: 2}}

	_, err := NewAuthorityResolver(authority).Resolve(context.Background(), date(2026, time.November, 8))
	if !errors.Is(err, ErrUnmappedSeason) {
		t.Errorf("Resolve() error = %v, want ErrUnmappedSeason", err)
	}
}

func TestProvider_FallsBackOnAuthorityError(t *testing.T) {
	tests := []struct {
		name      string
		authority *fakeAuthority
	}{
		{"authority error", &fakeAuthority{err: errors.New("connection refused")}},
		{"unmapped season", &fakeAuthority{day: AuthorityDay{Season: "Kingdomtide"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewProvider(tt.authority, quietLogger())
			d := date(2026, time.January, 25)

			got := p.Info(context.Background(), d)
			want := Builtin(d)

			if tt.authority.calls != 1 {
				t.Errorf("authority calls = %d, want 1", tt.authority.calls)
			}
			if got != want {
				t.Errorf("Info() = %+v, want built-in %+v", got, want)
			}
		})
	}
}

func TestProvider_NoAuthorityUsesBuiltin(t *testing.T) {
	p := NewProvider(nil, quietLogger())
	d := date(2025, time.December, 25)

	got := p.Info(context.Background(), d)
	if got.Source != SourceBuiltin {
		t.Errorf("Source = %s, want %s", got.Source, SourceBuiltin)
	}
	if got.Season != SeasonChristmas || got.Color != ColorWhite {
		t.Errorf("Info() = %s/%s, want christmas/White", got.Season, got.Color)
	}
}

func TestHTTPAuthority_Lookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/2026-03-01" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"season":"Lent","weekno":2,"name":"2nd Sunday of Lent"}`))
	}))
	defer srv.Close()

	a := NewHTTPAuthority(srv.URL+"/", time.Second)

	day, err := a.Lookup(context.Background(), "2026-03-01")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if day.Season != "Lent" || day.WeekNo != 2 {
		t.Errorf("Lookup() = %+v, want Lent week 2", day)
	}

	_, err = a.Lookup(context.Background(), "2026-03-02")
	if !errors.Is(err, ErrAuthorityStatus) {
		t.Errorf("Lookup() error = %v, want ErrAuthorityStatus", err)
	}
}

func TestHTTPAuthority_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	p := NewProvider(NewHTTPAuthority(srv.URL, 20*time.Millisecond), quietLogger())

	got := p.Info(context.Background(), date(2026, time.March, 1))
	if got.Source != SourceBuiltin {
		t.Errorf("Source = %s, want %s after authority timeout", got.Source, SourceBuiltin)
	}
	if got.DayName != "The Second Sunday in Lent" {
		t.Errorf("DayName = %q, want %q", got.DayName, "The Second Sunday in Lent")
	}
}
