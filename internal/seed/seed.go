// Package seed provides database seeding utilities for development and
// testing. Seeded images get a placeholder object written to storage so the
// feed resolves real URLs out of the box.
package seed

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"math/rand"
	"time"

	"photostream/internal/models"
	"photostream/internal/storage"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultPassword is the password every seeded user gets.
const DefaultPassword = "password123"

// Seeder populates the database (and object storage) with demo data.
type Seeder struct {
	db    *gorm.DB
	store storage.ObjectStorage
	rng   *rand.Rand
}

// NewSeeder creates a Seeder bound to the given database and storage.
func NewSeeder(db *gorm.DB, store storage.ObjectStorage) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db:    db,
		store: store,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll removes all seedable rows. Hard deletes, child tables first.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	for _, model := range []any{
		&models.Like{}, &models.Comment{}, &models.Image{},
		&models.Profile{}, &models.User{},
	} {
		if err := s.db.Unscoped().Where("1 = 1").Delete(model).Error; err != nil {
			return fmt.Errorf("clear %T: %w", model, err)
		}
	}
	return nil
}

// SeedUsers creates n users with generated identities. All users share
// DefaultPassword; the hash is computed once.
func (s *Seeder) SeedUsers(ctx context.Context, n int) ([]*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		user := &models.User{
			Username: fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(100, 999)),
			Name:     gofakeit.Name(),
			Email:    gofakeit.Email(),
			Password: string(hash),
		}
		if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
			return nil, fmt.Errorf("create user: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("Created %d users", len(users))
	return users, nil
}

// SeedImages creates n images spread across the given users. Each image gets
// a placeholder PNG written to object storage under a fresh key, and a
// created_at spread over the last maxDays days.
func (s *Seeder) SeedImages(ctx context.Context, users []*models.User, n int) ([]*models.Image, error) {
	if len(users) == 0 {
		return nil, fmt.Errorf("no users to own images")
	}

	const maxDays = 90
	images := make([]*models.Image, 0, n)
	for i := 0; i < n; i++ {
		owner := users[s.rng.Intn(len(users))]
		key := fmt.Sprintf("images/%s.png", uuid.NewString())

		if err := s.store.Put(ctx, key, placeholderPNG(s.rng), "image/png"); err != nil {
			return nil, fmt.Errorf("put placeholder object: %w", err)
		}

		img := &models.Image{
			UserID:      owner.ID,
			StorageKey:  key,
			Title:       gofakeit.Sentence(4),
			Description: gofakeit.Paragraph(1, 2, 8, " "),
			Location:    gofakeit.City(),
			CreatedAt:   s.pastTime(maxDays),
		}
		if err := s.db.WithContext(ctx).Create(img).Error; err != nil {
			return nil, fmt.Errorf("create image: %w", err)
		}
		images = append(images, img)
	}
	log.Printf("Created %d images", len(images))
	return images, nil
}

// SeedEngagement adds likes, comments, and reposts across the given images.
// Counters on the image rows are kept consistent with the created rows.
func (s *Seeder) SeedEngagement(ctx context.Context, users []*models.User, images []*models.Image) error {
	var likes, comments, reposts int

	for _, img := range images {
		for _, user := range users {
			if s.rng.Intn(100) >= 30 {
				continue
			}
			like := &models.Like{UserID: user.ID, ImageID: img.ID}
			if err := s.db.WithContext(ctx).Create(like).Error; err != nil {
				return fmt.Errorf("create like: %w", err)
			}
			likes++
		}

		nComments := s.rng.Intn(4)
		for j := 0; j < nComments; j++ {
			author := users[s.rng.Intn(len(users))]
			comment := &models.Comment{
				ImageID:   img.ID,
				UserID:    author.ID,
				Text:      gofakeit.Sentence(s.rng.Intn(10) + 3),
				CreatedAt: img.CreatedAt.Add(time.Duration(j+1) * time.Hour),
			}
			if err := s.db.WithContext(ctx).Create(comment).Error; err != nil {
				return fmt.Errorf("create comment: %w", err)
			}
			comments++
		}
		if nComments > 0 {
			if err := s.db.WithContext(ctx).Model(img).
				Update("comment_count", gorm.Expr("comment_count + ?", nComments)).Error; err != nil {
				return fmt.Errorf("bump comment count: %w", err)
			}
		}

		// Occasional repost by a user other than the owner.
		if s.rng.Intn(100) < 15 {
			reposter := users[s.rng.Intn(len(users))]
			if reposter.ID == img.UserID {
				continue
			}
			repost := &models.Image{
				UserID:          reposter.ID,
				StorageKey:      img.StorageKey,
				Title:           img.Title,
				Description:     img.Description,
				Location:        img.Location,
				IsRepost:        true,
				OriginalImageID: &img.ID,
				RepostNote:      gofakeit.Sentence(5),
				CreatedAt:       img.CreatedAt.Add(time.Duration(s.rng.Intn(48)+1) * time.Hour),
			}
			if err := s.db.WithContext(ctx).Create(repost).Error; err != nil {
				return fmt.Errorf("create repost: %w", err)
			}
			if err := s.db.WithContext(ctx).Model(img).
				Update("share_count", gorm.Expr("share_count + 1")).Error; err != nil {
				return fmt.Errorf("bump share count: %w", err)
			}
			reposts++
		}
	}

	log.Printf("Created %d likes, %d comments, %d reposts", likes, comments, reposts)
	return nil
}

// SeedProfiles gives roughly half the users a profile image.
func (s *Seeder) SeedProfiles(ctx context.Context, users []*models.User) error {
	var created int
	for _, user := range users {
		if s.rng.Intn(2) == 0 {
			continue
		}
		key := fmt.Sprintf("profiles/%s.png", uuid.NewString())
		if err := s.store.Put(ctx, key, placeholderPNG(s.rng), "image/png"); err != nil {
			return fmt.Errorf("put profile object: %w", err)
		}
		profile := &models.Profile{UserID: user.ID, StorageKey: key}
		if err := s.db.WithContext(ctx).Create(profile).Error; err != nil {
			return fmt.Errorf("create profile: %w", err)
		}
		created++
	}
	log.Printf("Created %d profile images", created)
	return nil
}

func (s *Seeder) pastTime(maxDays int) time.Time {
	back := time.Duration(s.rng.Intn(maxDays))*24*time.Hour +
		time.Duration(s.rng.Intn(24))*time.Hour +
		time.Duration(s.rng.Intn(60))*time.Minute
	return time.Now().Add(-back)
}

// placeholderPNG renders a small solid-color PNG so seeded keys hold a real,
// viewable object.
func placeholderPNG(rng *rand.Rand) []byte {
	img := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	fill := color.NRGBA{
		R: uint8(rng.Intn(256)),
		G: uint8(rng.Intn(256)),
		B: uint8(rng.Intn(256)),
		A: 255,
	}
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			img.SetNRGBA(x, y, fill)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		// A 16x16 in-memory encode cannot fail.
		panic(err)
	}
	return buf.Bytes()
}
