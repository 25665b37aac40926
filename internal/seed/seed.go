// Package seed provides database seeding utilities for development and
// testing.
package seed

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"snsapp/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumMembers  int
	NumPosts    int
	ShouldClean bool
}

const botNickname = "loro.bot"

// EnsureBot creates the bot persona account if it does not exist yet and
// returns it. The bot authors generated posts and replies.
func EnsureBot(db *gorm.DB) (*models.Member, error) {
	var bot models.Member
	err := db.Where("role = ?", models.RoleBot).First(&bot).Error
	if err == nil {
		return &bot, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(gofakeit.Password(true, true, true, false, false, 24)), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	bot = models.Member{
		Email:           botNickname + "@example.com",
		Nickname:        botNickname,
		Password:        string(hash),
		Role:            models.RoleBot,
		ClassLabel:      "bot",
		ProfileImageURL: "https://picsum.photos/seed/loro-bot/256/256",
	}
	if err := db.Create(&bot).Error; err != nil {
		return nil, err
	}
	return &bot, nil
}

// Run populates the database with demo members, follows, posts, comments and
// likes, keeping every denormalized counter consistent with its join rows.
func Run(db *gorm.DB, opts Options) error {
	gofakeit.Seed(time.Now().UnixNano())
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	if opts.ShouldClean {
		for _, table := range []string{
			"post_likes", "comment_likes", "recomment_likes", "bot_events",
			"recomments", "comments", "post_images", "posts", "follows", "members",
		} {
			if err := db.Exec("DELETE FROM " + table).Error; err != nil {
				return fmt.Errorf("cleaning %s: %w", table, err)
			}
		}
	}

	if _, err := EnsureBot(db); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	members := make([]*models.Member, 0, opts.NumMembers)
	for i := 0; i < opts.NumMembers; i++ {
		m := &models.Member{
			Email:           fmt.Sprintf("%s%d@example.com", gofakeit.Username(), i),
			Nickname:        fmt.Sprintf("%s.%s", gofakeit.FirstName(), gofakeit.LastName()),
			Password:        string(hash),
			Role:            models.RoleOrdinary,
			ClassLabel:      gofakeit.RandomString([]string{"pangyo_1", "pangyo_2", "jeju_1", "jeju_2"}),
			ProfileImageURL: fmt.Sprintf("https://picsum.photos/seed/%s/256/256", gofakeit.UUID()),
		}
		if err := db.Create(m).Error; err != nil {
			return err
		}
		members = append(members, m)
	}
	if len(members) == 0 {
		return nil
	}

	// Follow mesh: each member follows a handful of others. Counters are
	// written alongside the join rows.
	for _, m := range members {
		n := r.Intn(4)
		for j := 0; j < n; j++ {
			target := members[r.Intn(len(members))]
			if target.ID == m.ID {
				continue
			}
			res := db.Where(models.Follow{FollowerUserID: m.ID, FollowingUserID: target.ID}).
				FirstOrCreate(&models.Follow{FollowerUserID: m.ID, FollowingUserID: target.ID})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				continue
			}
			if err := db.Model(&models.Member{}).Where("id = ?", m.ID).
				UpdateColumn("following_count", gorm.Expr("following_count + 1")).Error; err != nil {
				return err
			}
			if err := db.Model(&models.Member{}).Where("id = ?", target.ID).
				UpdateColumn("follower_count", gorm.Expr("follower_count + 1")).Error; err != nil {
				return err
			}
		}
	}

	boards := []models.BoardType{models.BoardAll, models.BoardFree, models.BoardQnA}
	posts := make([]*models.Post, 0, opts.NumPosts)
	for i := 0; i < opts.NumPosts; i++ {
		author := members[r.Intn(len(members))]
		p := &models.Post{
			MemberID:  author.ID,
			BoardType: boards[r.Intn(len(boards))],
			Content:   gofakeit.Paragraph(1, 3, 8, "\n"),
			CreatedAt: time.Now().Add(-time.Duration(r.Intn(90*24)) * time.Hour),
		}
		if err := db.Create(p).Error; err != nil {
			return err
		}
		if r.Intn(3) == 0 {
			img := &models.PostImage{
				PostID:    p.ID,
				SortIndex: 0,
				ImgURL:    fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID()),
			}
			if err := db.Create(img).Error; err != nil {
				return err
			}
		}
		posts = append(posts, p)
	}

	for _, p := range posts {
		nComments := r.Intn(4)
		for j := 0; j < nComments; j++ {
			commenter := members[r.Intn(len(members))]
			cm := &models.Comment{
				PostID:   p.ID,
				MemberID: commenter.ID,
				Content:  gofakeit.Sentence(10),
			}
			if err := db.Create(cm).Error; err != nil {
				return err
			}
			if err := db.Model(&models.Post{}).Where("id = ?", p.ID).
				UpdateColumn("comment_count", gorm.Expr("comment_count + 1")).Error; err != nil {
				return err
			}
		}

		nLikes := r.Intn(5)
		for j := 0; j < nLikes; j++ {
			liker := members[r.Intn(len(members))]
			res := db.Where(models.PostLike{MemberID: liker.ID, PostID: p.ID}).
				FirstOrCreate(&models.PostLike{MemberID: liker.ID, PostID: p.ID})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				continue
			}
			if err := db.Model(&models.Post{}).Where("id = ?", p.ID).
				UpdateColumn("like_count", gorm.Expr("like_count + 1")).Error; err != nil {
				return err
			}
		}
	}

	log.Printf("Seeded %d members and %d posts", len(members), len(posts))
	return nil
}
