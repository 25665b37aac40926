package feed

import (
	"time"

	"snsapp/internal/models"
)

// UserInfo is the author block embedded in every response item.
type UserInfo struct {
	ID         uint   `json:"id"`
	Nickname   string `json:"nickname"`
	ImageURL   string `json:"image_url"`
	IsFollowed bool   `json:"is_followed"`
}

// PostDetail is the response shape for a post.
type PostDetail struct {
	ID             uint      `json:"id"`
	User           UserInfo  `json:"user"`
	BoardType      string    `json:"board_type"`
	Content        string    `json:"content"`
	ImageURL       string    `json:"image_url,omitempty"`
	YoutubeURL     string    `json:"youtube_url,omitempty"`
	YoutubeSummary string    `json:"youtube_summary,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	LikeCount      int       `json:"like_count"`
	CommentCount   int       `json:"comment_count"`
	IsMine         bool      `json:"is_mine"`
	IsLiked        bool      `json:"is_liked"`
}

// CommentDetail is the response shape for a comment.
type CommentDetail struct {
	ID             uint      `json:"id"`
	User           UserInfo  `json:"user"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
	LikeCount      int       `json:"like_count"`
	RecommentCount int       `json:"recomment_count"`
	IsMine         bool      `json:"is_mine"`
	IsLiked        bool      `json:"is_liked"`
}

// RecommentDetail is the response shape for a recomment.
type RecommentDetail struct {
	ID        uint      `json:"id"`
	User      UserInfo  `json:"user"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	LikeCount int       `json:"like_count"`
	IsMine    bool      `json:"is_mine"`
	IsLiked   bool      `json:"is_liked"`
}

// Assembly is pure composition: no I/O, and the input slice order is the
// output order — the enrichment maps never reorder a page.

// AssemblePosts merges a page of posts with its enrichment.
func AssemblePosts(posts []*models.Post, en *Enrichment) []PostDetail {
	details := make([]PostDetail, 0, len(posts))
	for _, p := range posts {
		details = append(details, PostDetail{
			ID:             p.ID,
			User:           en.UserInfo(p.MemberID),
			BoardType:      string(p.BoardType),
			Content:        p.Content,
			ImageURL:       en.FirstImage(p.ID),
			YoutubeURL:     p.YoutubeURL,
			YoutubeSummary: p.YoutubeSummary,
			CreatedAt:      p.CreatedAt,
			LikeCount:      p.LikeCount,
			CommentCount:   p.CommentCount,
			IsMine:         en.IsMine(p.MemberID),
			IsLiked:        en.IsLiked(p.ID),
		})
	}
	return details
}

// AssembleComments merges a page of comments with its enrichment.
func AssembleComments(comments []*models.Comment, en *Enrichment) []CommentDetail {
	details := make([]CommentDetail, 0, len(comments))
	for _, c := range comments {
		details = append(details, CommentDetail{
			ID:             c.ID,
			User:           en.UserInfo(c.MemberID),
			Content:        c.Content,
			CreatedAt:      c.CreatedAt,
			LikeCount:      c.LikeCount,
			RecommentCount: c.RecommentCount,
			IsMine:         en.IsMine(c.MemberID),
			IsLiked:        en.IsLiked(c.ID),
		})
	}
	return details
}

// AssembleRecomments merges a page of recomments with its enrichment.
func AssembleRecomments(recomments []*models.Recomment, en *Enrichment) []RecommentDetail {
	details := make([]RecommentDetail, 0, len(recomments))
	for _, rc := range recomments {
		details = append(details, RecommentDetail{
			ID:        rc.ID,
			User:      en.UserInfo(rc.MemberID),
			Content:   rc.Content,
			CreatedAt: rc.CreatedAt,
			LikeCount: rc.LikeCount,
			IsMine:    en.IsMine(rc.MemberID),
			IsLiked:   en.IsLiked(rc.ID),
		})
	}
	return details
}

// AssembleMembers merges a member page (likers, followers, followings) with
// its enrichment.
func AssembleMembers(members []models.Member, en *Enrichment) []UserInfo {
	infos := make([]UserInfo, 0, len(members))
	for i := range members {
		m := &members[i]
		_, followed := en.followed[m.ID]
		infos = append(infos, UserInfo{
			ID:         m.ID,
			Nickname:   m.Nickname,
			ImageURL:   m.ProfileImageURL,
			IsFollowed: followed,
		})
	}
	return infos
}

// Adapters giving domain rows the Item view.

// PostItems converts posts for enrichment.
func PostItems(posts []*models.Post) []Item {
	items := make([]Item, len(posts))
	for i, p := range posts {
		items[i] = postItem{p}
	}
	return items
}

// CommentItems converts comments for enrichment.
func CommentItems(comments []*models.Comment) []Item {
	items := make([]Item, len(comments))
	for i, c := range comments {
		items[i] = commentItem{c}
	}
	return items
}

// RecommentItems converts recomments for enrichment.
func RecommentItems(recomments []*models.Recomment) []Item {
	items := make([]Item, len(recomments))
	for i, rc := range recomments {
		items[i] = recommentItem{rc}
	}
	return items
}

type postItem struct{ *models.Post }

func (p postItem) ItemID() uint   { return p.ID }
func (p postItem) AuthorID() uint { return p.MemberID }

type commentItem struct{ *models.Comment }

func (c commentItem) ItemID() uint   { return c.ID }
func (c commentItem) AuthorID() uint { return c.MemberID }

type recommentItem struct{ *models.Recomment }

func (r recommentItem) ItemID() uint   { return r.ID }
func (r recommentItem) AuthorID() uint { return r.MemberID }
