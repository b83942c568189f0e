package gql

import (
	"context"

	"github.com/graph-gophers/graphql-go"

	"asetgraph/internal/service"
)

type TrackResolver struct {
	t service.Track
}

func (r *TrackResolver) ID() *graphql.ID {
	id := graphql.ID(r.t.ID)
	return &id
}

func (r *TrackResolver) Title() *string  { return &r.t.Title }
func (r *TrackResolver) Author() *string { return &r.t.Author }

func (r *TrackResolver) Thumbnail() *string {
	if r.t.Thumbnail == "" {
		return nil
	}
	return &r.t.Thumbnail
}

func (r *TrackResolver) Length() *int32 {
	n := int32(r.t.Length)
	return &n
}

func (r *TrackResolver) ModulesCount() *int32 {
	n := int32(r.t.ModulesCount)
	return &n
}

func (r *Resolver) TracksForHome(ctx context.Context) ([]*TrackResolver, error) {
	ds, err := dataSources(ctx)
	if err != nil {
		return nil, err
	}
	tracks := ds.Track.Tracks()
	out := make([]*TrackResolver, len(tracks))
	for i, t := range tracks {
		out[i] = &TrackResolver{t}
	}
	return out, nil
}

func (r *Resolver) Track(ctx context.Context, args struct{ ID graphql.ID }) (*TrackResolver, error) {
	ds, err := dataSources(ctx)
	if err != nil {
		return nil, err
	}
	t := ds.Track.TrackByID(string(args.ID))
	if t == nil {
		return nil, nil
	}
	return &TrackResolver{*t}, nil
}
