package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/viewtube/backend/internal/logger"
	"github.com/viewtube/backend/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seeder handles database seeding operations
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	_ = gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{db: db}
}

// SeedDev fills the development database with realistic data
func (s *Seeder) SeedDev() error {
	logger.Info("Creating users...")
	users, err := s.seedUsers(25)
	if err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	logger.Info("Creating videos...")
	videos, err := s.seedVideos(users, 100)
	if err != nil {
		return fmt.Errorf("failed to seed videos: %w", err)
	}

	logger.Info("Creating tweets...")
	tweets, err := s.seedTweets(users, 80)
	if err != nil {
		return fmt.Errorf("failed to seed tweets: %w", err)
	}

	logger.Info("Creating comments and replies...")
	if err := s.seedComments(users, videos, tweets, 300); err != nil {
		return fmt.Errorf("failed to seed comments: %w", err)
	}

	logger.Info("Creating likes...")
	if err := s.seedLikes(users, videos, tweets, 500); err != nil {
		return fmt.Errorf("failed to seed likes: %w", err)
	}

	logger.Info("Creating playlists...")
	if err := s.seedPlaylists(users, videos); err != nil {
		return fmt.Errorf("failed to seed playlists: %w", err)
	}

	logger.Info("Creating subscriptions...")
	if err := s.seedSubscriptions(users, 120); err != nil {
		return fmt.Errorf("failed to seed subscriptions: %w", err)
	}

	logger.Info("Creating watch history...")
	if err := s.seedWatchHistory(users, videos, 400); err != nil {
		return fmt.Errorf("failed to seed watch history: %w", err)
	}

	return nil
}

func (s *Seeder) seedUsers(count int) ([]models.User, error) {
	// Every seeded account shares one password so devs can log in as anyone
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, count)
	for i := 0; i < count; i++ {
		username := strings.ToLower(gofakeit.Username())
		user := models.User{
			Email:        fmt.Sprintf("%s%d@%s", username, i, gofakeit.DomainName()),
			Username:     fmt.Sprintf("%s%d", username, i),
			FullName:     gofakeit.Name(),
			PasswordHash: string(hash),
			AvatarURL:    fmt.Sprintf("https://api.dicebear.com/7.x/avataaars/png?seed=%s", username),
		}
		if err := s.db.Create(&user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func (s *Seeder) seedVideos(users []models.User, count int) ([]models.Video, error) {
	videos := make([]models.Video, 0, count)
	for i := 0; i < count; i++ {
		owner := users[rand.Intn(len(users))]
		video := models.Video{
			OwnerID:      owner.ID,
			Title:        gofakeit.Sentence(rand.Intn(5) + 3),
			Description:  gofakeit.Paragraph(1, 3, 10, " "),
			VideoURL:     fmt.Sprintf("https://cdn.example.com/videos/%s.mp4", gofakeit.UUID()),
			ThumbnailURL: fmt.Sprintf("https://cdn.example.com/thumbnails/%s.jpg", gofakeit.UUID()),
			Duration:     gofakeit.Float64Range(10, 1200),
			ViewCount:    int64(rand.Intn(10000)),
			IsPublished:  rand.Intn(10) > 1,
		}
		if err := s.db.Create(&video).Error; err != nil {
			return nil, err
		}
		videos = append(videos, video)
	}
	return videos, nil
}

func (s *Seeder) seedTweets(users []models.User, count int) ([]models.Tweet, error) {
	tweets := make([]models.Tweet, 0, count)
	for i := 0; i < count; i++ {
		owner := users[rand.Intn(len(users))]
		tweet := models.Tweet{
			OwnerID: owner.ID,
			Content: gofakeit.Sentence(rand.Intn(15) + 3),
		}
		if err := s.db.Create(&tweet).Error; err != nil {
			return nil, err
		}
		tweets = append(tweets, tweet)
	}
	return tweets, nil
}

func (s *Seeder) seedComments(users []models.User, videos []models.Video, tweets []models.Tweet, count int) error {
	for i := 0; i < count; i++ {
		owner := users[rand.Intn(len(users))]

		var target models.CommentTarget
		if rand.Intn(3) > 0 {
			target = models.VideoTarget(videos[rand.Intn(len(videos))].ID)
		} else {
			target = models.TweetTarget(tweets[rand.Intn(len(tweets))].ID)
		}

		comment := models.Comment{
			OwnerID: owner.ID,
			Content: gofakeit.Sentence(rand.Intn(12) + 2),
			Target:  target,
		}
		if err := s.db.Create(&comment).Error; err != nil {
			return err
		}

		// Roughly a third of comments get a reply thread
		for j := 0; j < rand.Intn(3); j++ {
			reply := models.Reply{
				CommentID: comment.ID,
				OwnerID:   users[rand.Intn(len(users))].ID,
				Content:   gofakeit.Sentence(rand.Intn(8) + 2),
			}
			if err := s.db.Create(&reply).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *Seeder) seedLikes(users []models.User, videos []models.Video, tweets []models.Tweet, count int) error {
	for i := 0; i < count; i++ {
		user := users[rand.Intn(len(users))]

		like := models.Like{UserID: user.ID}
		if rand.Intn(2) == 0 {
			like.TargetType = models.LikeTargetVideo
			like.TargetID = videos[rand.Intn(len(videos))].ID
		} else {
			like.TargetType = models.LikeTargetTweet
			like.TargetID = tweets[rand.Intn(len(tweets))].ID
		}

		// The unique (user, target) index rejects repeats; skip them
		if err := s.db.Create(&like).Error; err != nil {
			continue
		}
	}
	return nil
}

func (s *Seeder) seedPlaylists(users []models.User, videos []models.Video) error {
	for _, user := range users {
		for i := 0; i < rand.Intn(3); i++ {
			playlist := models.Playlist{
				OwnerID:     user.ID,
				Name:        fmt.Sprintf("%s %s", gofakeit.AdjectiveDescriptive(), gofakeit.NounAbstract()),
				Description: gofakeit.Sentence(rand.Intn(8) + 2),
			}
			if err := s.db.Create(&playlist).Error; err != nil {
				continue
			}

			for j := 0; j < rand.Intn(8); j++ {
				entry := models.PlaylistVideo{
					PlaylistID: playlist.ID,
					VideoID:    videos[rand.Intn(len(videos))].ID,
				}
				if err := s.db.Create(&entry).Error; err != nil {
					continue
				}
			}
		}
	}
	return nil
}

func (s *Seeder) seedSubscriptions(users []models.User, count int) error {
	for i := 0; i < count; i++ {
		subscriber := users[rand.Intn(len(users))]
		channel := users[rand.Intn(len(users))]
		if subscriber.ID == channel.ID {
			continue
		}

		sub := models.Subscription{
			SubscriberID: subscriber.ID,
			ChannelID:    channel.ID,
		}
		if err := s.db.Create(&sub).Error; err != nil {
			continue
		}
	}
	return nil
}

func (s *Seeder) seedWatchHistory(users []models.User, videos []models.Video, count int) error {
	for i := 0; i < count; i++ {
		entry := models.WatchHistoryEntry{
			UserID:  users[rand.Intn(len(users))].ID,
			VideoID: videos[rand.Intn(len(videos))].ID,
		}
		if err := s.db.Create(&entry).Error; err != nil {
			continue
		}
	}
	return nil
}

// Clean removes every seeded table's rows. Development only.
func (s *Seeder) Clean() error {
	tables := []interface{}{
		&models.WatchHistoryEntry{},
		&models.PlaylistVideo{},
		&models.Playlist{},
		&models.Subscription{},
		&models.Like{},
		&models.Reply{},
		&models.Comment{},
		&models.Tweet{},
		&models.Video{},
		&models.User{},
	}
	for _, table := range tables {
		if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(table).Error; err != nil {
			return err
		}
	}
	return nil
}
