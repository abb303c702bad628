package lectionary

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractReadings(t *testing.T) {
	tests := []struct {
		name string
		json string
		want Readings
	}{
		{
			name: "slot keys",
			json: `{"first_lesson":"Isaiah 9:1-4","psalm":"Psalm 27:1, 5-13","second_lesson":"1 Corinthians 1:10-18","gospel":"Matthew 4:12-23"}`,
			want: Readings{"Isaiah 9:1-4", "Psalm 27:1, 5-13", "1 Corinthians 1:10-18", "Matthew 4:12-23"},
		},
		{
			name: "daily office record",
			json: `{"day":"January 5","title":"Eve of Epiphany","psalms":["2","110:1-5"],"lessons":{"first":"Isaiah 66:18-23","second":"Romans 15:7-13","gospel":"John 2:1-11"}}`,
			want: Readings{"Isaiah 66:18-23", "2; 110:1-5", "Romans 15:7-13", "John 2:1-11"},
		},
		{
			name: "morning office",
			json: `{"day":"March 3","morning":{"psalms":"Psalm 95","lessons":{"first":"Genesis 37:1-11","second":"1 Corinthians 9:1-15"}}}`,
			want: Readings{FirstLesson: "Genesis 37:1-11", Psalm: "Psalm 95", SecondLesson: "1 Corinthians 9:1-15"},
		},
		{
			name: "ordered readings list",
			json: `{"readings":["Acts 2:1-21",{"citation":"Psalm 104:25-35, 37"},"1 Corinthians 12:3b-13","John 20:19-23"]}`,
			want: Readings{"Acts 2:1-21", "Psalm 104:25-35, 37", "1 Corinthians 12:3b-13", "John 20:19-23"},
		},
		{
			name: "top level wins over nested",
			json: `{"gospel":"Luke 2:1-20","readings":{"gospel":"John 1:1-14","psalm":"Psalm 96"}}`,
			want: Readings{Psalm: "Psalm 96", Gospel: "Luke 2:1-20"},
		},
		{
			name: "psalms split by office",
			json: `{"day":"January 5","psalms":{"morning":["Psalm 1","Psalm 2"],"evening":["Psalm 3"]},"lessons":{"first":"Isaiah 66:18-23","gospel":"John 2:1-11"}}`,
			want: Readings{FirstLesson: "Isaiah 66:18-23", Psalm: "Psalm 1; Psalm 2; Psalm 3", Gospel: "John 2:1-11"},
		},
		{
			name: "nothing recognizable",
			json: `{"day":"June 1","title":"Feria"}`,
			want: Readings{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var obj map[string]any
			require.NoError(t, json.Unmarshal([]byte(tt.json), &obj))
			assert.Equal(t, tt.want, extractReadings(obj))
		})
	}
}
