// Package feed turns pages of primary rows into viewer-personalized response
// items. Enrichment issues a fixed small number of batched queries regardless
// of page size; assembly is pure and preserves the page order.
package feed

import (
	"context"

	"snsapp/internal/models"
	"snsapp/internal/repository"
)

// Item is any primary row the enricher can personalize.
type Item interface {
	ItemID() uint
	AuthorID() uint
}

// LikedIDsFunc resolves the subset of item ids the viewer has liked. Each
// item kind supplies its own (post likes, comment likes, recomment likes),
// the same way admin checks are injected into services.
type LikedIDsFunc func(ctx context.Context, viewerID uint, itemIDs []uint) ([]uint, error)

// Enricher resolves viewer-relative state for a page of items.
type Enricher struct {
	members repository.MemberRepository
	follows repository.FollowRepository
	images  repository.PostImageRepository
}

// NewEnricher creates a new enricher.
func NewEnricher(
	members repository.MemberRepository,
	follows repository.FollowRepository,
	images repository.PostImageRepository,
) *Enricher {
	return &Enricher{members: members, follows: follows, images: images}
}

// Enrichment holds the batched lookups for one page.
type Enrichment struct {
	viewerID uint
	authors  map[uint]*models.Member
	liked    map[uint]struct{}
	followed map[uint]struct{}
	images   map[uint]string
}

// Options control which viewer-scoped lookups run.
type Options struct {
	// LikedIDs resolves the viewer's liked subset; nil skips the lookup.
	LikedIDs LikedIDsFunc
	// WithImages resolves first-image URLs (posts only).
	WithImages bool
}

// Enrich resolves author info, liked/followed flags and first images for a
// page with at most four queries, independent of page size. An anonymous
// viewer (viewerID 0) issues no viewer-scoped query at all, and a viewer id
// that matches no member degrades to anonymous flags rather than failing the
// page. An empty page returns immediately without touching the store.
func (e *Enricher) Enrich(ctx context.Context, items []Item, viewerID uint, opts Options) (*Enrichment, error) {
	en := &Enrichment{
		viewerID: viewerID,
		authors:  map[uint]*models.Member{},
		liked:    map[uint]struct{}{},
		followed: map[uint]struct{}{},
		images:   map[uint]string{},
	}
	if len(items) == 0 {
		return en, nil
	}

	itemIDs := make([]uint, 0, len(items))
	authorIDs := make([]uint, 0, len(items))
	seenAuthors := map[uint]struct{}{}
	for _, it := range items {
		itemIDs = append(itemIDs, it.ItemID())
		if _, ok := seenAuthors[it.AuthorID()]; ok {
			continue
		}
		seenAuthors[it.AuthorID()] = struct{}{}
		authorIDs = append(authorIDs, it.AuthorID())
	}

	authors, err := e.members.GetByIDs(ctx, authorIDs)
	if err != nil {
		return nil, err
	}
	en.authors = authors

	if viewerID != 0 && opts.LikedIDs != nil {
		likedIDs, err := opts.LikedIDs(ctx, viewerID, itemIDs)
		if err != nil {
			return nil, err
		}
		for _, id := range likedIDs {
			en.liked[id] = struct{}{}
		}
	}

	if viewerID != 0 && anyForeignAuthor(authorIDs, viewerID) {
		followedIDs, err := e.follows.FollowedMemberIDs(ctx, viewerID, authorIDs)
		if err != nil {
			return nil, err
		}
		for _, id := range followedIDs {
			en.followed[id] = struct{}{}
		}
	}

	if opts.WithImages {
		images, err := e.images.FirstImageByPostIDs(ctx, itemIDs)
		if err != nil {
			return nil, err
		}
		en.images = images
	}

	return en, nil
}

// EnrichMembers resolves the viewer's followed flags for a plain member page
// (likers, followers, followings): one query, none for anonymous viewers.
func (e *Enricher) EnrichMembers(ctx context.Context, members []models.Member, viewerID uint) (*Enrichment, error) {
	en := &Enrichment{
		viewerID: viewerID,
		authors:  map[uint]*models.Member{},
		liked:    map[uint]struct{}{},
		followed: map[uint]struct{}{},
		images:   map[uint]string{},
	}
	if len(members) == 0 || viewerID == 0 {
		return en, nil
	}

	ids := make([]uint, 0, len(members))
	for i := range members {
		if members[i].ID != viewerID {
			ids = append(ids, members[i].ID)
		}
	}
	followedIDs, err := e.follows.FollowedMemberIDs(ctx, viewerID, ids)
	if err != nil {
		return nil, err
	}
	for _, id := range followedIDs {
		en.followed[id] = struct{}{}
	}
	return en, nil
}

// anyForeignAuthor reports whether the page references an author other than
// the viewer. A page containing only the viewer's own items needs no
// followed-ids query.
func anyForeignAuthor(authorIDs []uint, viewerID uint) bool {
	for _, id := range authorIDs {
		if id != viewerID {
			return true
		}
	}
	return false
}

// UserInfo returns the author block for a response item.
func (en *Enrichment) UserInfo(authorID uint) UserInfo {
	info := UserInfo{ID: authorID}
	if m, ok := en.authors[authorID]; ok {
		info.Nickname = m.Nickname
		info.ImageURL = m.ProfileImageURL
	}
	_, info.IsFollowed = en.followed[authorID]
	return info
}

// IsLiked reports whether the viewer liked the item.
func (en *Enrichment) IsLiked(itemID uint) bool {
	_, ok := en.liked[itemID]
	return ok
}

// IsMine reports whether the viewer authored the item. Computed locally,
// never queried.
func (en *Enrichment) IsMine(authorID uint) bool {
	return en.viewerID != 0 && en.viewerID == authorID
}

// FirstImage returns the item's first image URL, or "" when it has none.
func (en *Enrichment) FirstImage(itemID uint) string {
	return en.images[itemID]
}
