package service

// Track is a learning track served from static data
type Track struct {
	ID           string
	Title        string
	Author       string
	Thumbnail    string
	Length       int
	ModulesCount int
}

var mockTracks = []Track{
	{ID: "1", Title: "Introduction to GraphQL", Author: "John Doe", Length: 240},
	{ID: "2", Title: "React Hooks Deep Dive", Author: "Jane Smith", Length: 320},
	{ID: "3", Title: "Node.js Best Practices", Author: "Dev Team", Length: 280},
}

// TrackAPI serves tracks from an in-memory list; it never touches the store
type TrackAPI struct {
	tracks []Track
}

func NewTrackAPI() *TrackAPI {
	return &TrackAPI{tracks: mockTracks}
}

func (a *TrackAPI) Tracks() []Track {
	return a.tracks
}

// TrackByID returns nil when no track has the id
func (a *TrackAPI) TrackByID(id string) *Track {
	for i := range a.tracks {
		if a.tracks[i].ID == id {
			t := a.tracks[i]
			return &t
		}
	}
	return nil
}
