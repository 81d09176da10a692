package library

import (
	"testing"

	"github.com/desertthunder/uta/internal/models"
	th "github.com/desertthunder/uta/internal/testing"
)

func TestAggregate(t *testing.T) {
	t.Run("Empty Collection", func(t *testing.T) {
		st := Aggregate(nil)

		if st.Total != 0 || st.FavoriteCount != 0 {
			t.Errorf("expected zero counts, got %+v", st)
		}
		if st.AverageScore != 0 {
			t.Errorf("expected average 0 with no songs, got %d", st.AverageScore)
		}
		if len(st.TopArtists) != 0 || len(st.HighScoreSongs) != 0 {
			t.Error("expected empty listings")
		}
	})

	t.Run("Average Ignores Unscored Songs", func(t *testing.T) {
		songs := []models.Song{
			{ID: 1, Score: th.IntPtr(80)},
			{ID: 2},
			{ID: 3, Score: th.IntPtr(90)},
		}

		st := Aggregate(songs)

		if st.AverageScore != 85 {
			t.Errorf("expected average 85 over scored songs only, got %d", st.AverageScore)
		}
	})

	t.Run("Average Rounds Half Up", func(t *testing.T) {
		songs := []models.Song{
			{ID: 1, Score: th.IntPtr(84)},
			{ID: 2, Score: th.IntPtr(85)},
		}

		if st := Aggregate(songs); st.AverageScore != 85 {
			t.Errorf("expected 84.5 to round to 85, got %d", st.AverageScore)
		}
	})

	t.Run("All Unscored Yields Zero Average", func(t *testing.T) {
		songs := []models.Song{{ID: 1}, {ID: 2}}

		if st := Aggregate(songs); st.AverageScore != 0 {
			t.Errorf("expected average 0, got %d", st.AverageScore)
		}
	})

	t.Run("Counts Favorites And Tags", func(t *testing.T) {
		songs := []models.Song{
			{ID: 1, IsFavorite: true, Tags: []models.Tag{{ID: 1, Name: "得意曲"}}},
			{ID: 2, Tags: []models.Tag{{ID: 1, Name: "得意曲"}, {ID: 5, Name: "バラード"}}},
			{ID: 3, IsFavorite: true},
		}

		st := Aggregate(songs)

		if st.FavoriteCount != 2 {
			t.Errorf("expected 2 favorites, got %d", st.FavoriteCount)
		}
		if st.TagCount("得意曲") != 2 {
			t.Errorf("expected 2 songs tagged 得意曲, got %d", st.TagCount("得意曲"))
		}
		if st.TagCount("デュエット") != 0 {
			t.Errorf("expected 0 for unused tag, got %d", st.TagCount("デュエット"))
		}
	})

	t.Run("Top Artists Capped At Five", func(t *testing.T) {
		var songs []models.Song
		artists := []string{"a", "b", "c", "d", "e", "f"}
		for i, artist := range artists {
			for j := 0; j <= i; j++ {
				songs = append(songs, models.Song{ID: int64(len(songs) + 1), Artist: artist})
			}
		}

		st := Aggregate(songs)

		if len(st.TopArtists) != 5 {
			t.Fatalf("expected 5 artists, got %d", len(st.TopArtists))
		}
		if st.TopArtists[0].Name != "f" || st.TopArtists[0].Count != 6 {
			t.Errorf("expected f with 6 songs first, got %+v", st.TopArtists[0])
		}
		// "a" with a single song falls off the list.
		for _, g := range st.TopArtists {
			if g.Name == "a" {
				t.Error("smallest group should be cut")
			}
		}
	})

	t.Run("Top Categories Capped At Three", func(t *testing.T) {
		songs := []models.Song{
			{ID: 1, Category: "J-POP"},
			{ID: 2, Category: "J-POP"},
			{ID: 3, Category: "アニメ"},
			{ID: 4, Category: "ロック"},
			{ID: 5, Category: "演歌"},
		}

		st := Aggregate(songs)

		if len(st.TopCategories) != 3 {
			t.Fatalf("expected 3 categories, got %d", len(st.TopCategories))
		}
		if st.TopCategories[0].Name != "J-POP" {
			t.Errorf("expected J-POP first, got %s", st.TopCategories[0].Name)
		}
	})

	t.Run("Uncategorized Songs Form No Group", func(t *testing.T) {
		songs := []models.Song{
			{ID: 1, Category: "J-POP"},
			{ID: 2, Category: ""},
			{ID: 3, Category: ""},
		}

		st := Aggregate(songs)

		if len(st.TopCategories) != 1 {
			t.Fatalf("expected 1 category, got %+v", st.TopCategories)
		}
		if st.TopCategories[0].Name != "J-POP" || st.TopCategories[0].Count != 1 {
			t.Errorf("blank categories must not form a group, got %+v", st.TopCategories)
		}
	})

	t.Run("Ties Keep Encounter Order", func(t *testing.T) {
		songs := []models.Song{
			{ID: 1, Artist: "zeta"},
			{ID: 2, Artist: "alpha"},
		}

		st := Aggregate(songs)

		if st.TopArtists[0].Name != "zeta" || st.TopArtists[1].Name != "alpha" {
			t.Errorf("tied groups should keep first-seen order, got %+v", st.TopArtists)
		}
	})

	t.Run("High Scores", func(t *testing.T) {
		songs := []models.Song{
			{ID: 1, Score: th.IntPtr(84)},
			{ID: 2, Score: th.IntPtr(85)},
			{ID: 3, Score: th.IntPtr(99)},
			{ID: 4, Score: th.IntPtr(90)},
			{ID: 5, Score: th.IntPtr(92)},
		}

		st := Aggregate(songs)

		if len(st.HighScoreSongs) != 3 {
			t.Fatalf("expected top 3 high scores, got %d", len(st.HighScoreSongs))
		}
		want := []int64{3, 5, 4}
		for i, id := range want {
			if st.HighScoreSongs[i].ID != id {
				t.Errorf("expected id %d at position %d, got %d", id, i, st.HighScoreSongs[i].ID)
			}
		}
	})

	t.Run("Threshold Is Inclusive", func(t *testing.T) {
		songs := []models.Song{{ID: 1, Score: th.IntPtr(85)}}

		if st := Aggregate(songs); len(st.HighScoreSongs) != 1 {
			t.Error("score 85 should count as a high score")
		}
	})
}

func TestPickRandom(t *testing.T) {
	t.Run("Empty Collection Returns Nil", func(t *testing.T) {
		if got := PickRandom(nil, ""); got != nil {
			t.Errorf("expected nil, got %+v", got)
		}
	})

	t.Run("Single Song", func(t *testing.T) {
		songs := []models.Song{{ID: 7, Title: "Lemon"}}

		got := PickRandom(songs, "")
		if got == nil || got.ID != 7 {
			t.Fatalf("expected the only song, got %+v", got)
		}
	})

	t.Run("Tag Filter Restricts Pool", func(t *testing.T) {
		songs := []models.Song{
			{ID: 1},
			{ID: 2, Tags: []models.Tag{{ID: 1, Name: "得意曲"}}},
		}

		for range 20 {
			got := PickRandom(songs, "得意曲")
			if got == nil || got.ID != 2 {
				t.Fatalf("expected only tagged song, got %+v", got)
			}
		}
	})

	t.Run("No Tag Match Returns Nil", func(t *testing.T) {
		songs := []models.Song{{ID: 1}}

		if got := PickRandom(songs, "バラード"); got != nil {
			t.Errorf("expected nil, got %+v", got)
		}
	})

	t.Run("All Disables Filter", func(t *testing.T) {
		songs := []models.Song{{ID: 1}}

		if got := PickRandom(songs, FilterAll); got == nil {
			t.Error("expected a pick with filter disabled")
		}
	})
}
