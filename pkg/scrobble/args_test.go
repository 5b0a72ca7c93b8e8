package scrobble

import "testing"

func TestParseCollageArgs(t *testing.T) {
	tests := []struct {
		name   string
		phrase string
		want   CollageArgs
	}{
		{
			name:   "empty phrase gives defaults",
			phrase: "",
			want:   CollageArgs{Size: 3, Period: AllTime, Entry: EntryAlbum},
		},
		{
			name:   "size and month",
			phrase: "5 1m",
			want:   CollageArgs{Size: 5, Period: OneMonth, Entry: EntryAlbum},
		},
		{
			name:   "clean with size and alltime",
			phrase: "clean 4 alltime",
			want:   CollageArgs{Size: 4, Period: AllTime, Entry: EntryAlbum, Clean: true},
		},
		{
			name:   "bare entry type",
			phrase: "artist",
			want:   CollageArgs{Size: 3, Period: AllTime, Entry: EntryArtist},
		},
		{
			name:   "grid notation",
			phrase: "3x3",
			want:   CollageArgs{Size: 3, Period: AllTime, Entry: EntryAlbum},
		},
		{
			name:   "unordered tokens",
			phrase: "3 1m artist",
			want:   CollageArgs{Size: 3, Period: OneMonth, Entry: EntryArtist},
		},
		{
			name:   "entry type prefix match",
			phrase: "artists 1w",
			want:   CollageArgs{Size: 3, Period: OneWeek, Entry: EntryArtist},
		},
		{
			name:   "seven days is a week",
			phrase: "7d",
			want:   CollageArgs{Size: 3, Period: OneWeek, Entry: EntryAlbum},
		},
		{
			name:   "three and six month forms",
			phrase: "tracks 6m",
			want:   CollageArgs{Size: 3, Period: SixMonths, Entry: EntryTrack},
		},
		{
			name:   "one year",
			phrase: "1y 4",
			want:   CollageArgs{Size: 4, Period: OneYear, Entry: EntryAlbum},
		},
		{
			name:   "bare keyword period",
			phrase: "month",
			want:   CollageArgs{Size: 3, Period: OneMonth, Entry: EntryAlbum},
		},
		{
			name:   "overall keyword",
			phrase: "overall 5",
			want:   CollageArgs{Size: 5, Period: AllTime, Entry: EntryAlbum},
		},
		{
			name:   "garbage tokens are ignored",
			phrase: "ka hands pls",
			want:   CollageArgs{Size: 3, Period: AllTime, Entry: EntryAlbum},
		},
		{
			// A bare digit is claimed by the size scan before the
			// period scan ever sees it.
			name:   "ambiguous bare digit goes to size",
			phrase: "1",
			want:   CollageArgs{Size: 1, Period: AllTime, Entry: EntryAlbum},
		},
		{
			// Once size is taken, a second "3x3" token reaches the
			// period scan, where a leading 3 means three months.
			name:   "second grid token claims a period",
			phrase: "4 3x3",
			want:   CollageArgs{Size: 4, Period: ThreeMonths, Entry: EntryAlbum},
		},
		{
			name:   "notext flag",
			phrase: "notext 2",
			want:   CollageArgs{Size: 2, Period: AllTime, Entry: EntryAlbum, Clean: true},
		},
		{
			name:   "size out of range falls through",
			phrase: "9 artist",
			want:   CollageArgs{Size: 3, Period: AllTime, Entry: EntryArtist},
		},
		{
			name:   "at most four tokens are considered",
			phrase: "album 4 1m clean extra garbage",
			want:   CollageArgs{Size: 4, Period: OneMonth, Entry: EntryAlbum},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseCollageArgs(tt.phrase)
			if got != tt.want {
				t.Errorf("ParseCollageArgs(%q) = %+v, want %+v", tt.phrase, got, tt.want)
			}
		})
	}
}

// TestParseCollageArgsIdempotent checks that rendering a parse result and
// parsing it again is a fixed point.
func TestParseCollageArgsIdempotent(t *testing.T) {
	phrases := []string{
		"",
		"artist",
		"5 1m",
		"clean 4 alltime",
		"track 7 1y notext",
		"3x3 week",
		"6m",
	}

	for _, phrase := range phrases {
		first := ParseCollageArgs(phrase)
		second := ParseCollageArgs(first.String())
		if first != second {
			t.Errorf("parse(%q) = %+v, but parse(render) = %+v (rendered %q)",
				phrase, first, second, first.String())
		}
	}
}
