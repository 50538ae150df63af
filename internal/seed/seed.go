package seed

import (
	"fmt"

	"github.com/GiorgiUbiria/skill_swap/internal/logger"
	"github.com/GiorgiUbiria/skill_swap/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const seedPassword = "password123"

type demoPost struct {
	Title       string
	Description string
	Category    string
	Type        models.PostType
}

var demoUsers = []struct {
	Name  string
	Email string
	Posts []demoPost
}{
	{"Ann Demo", "ann@skillswap.local", []demoPost{
		{"Guitar Lessons", "Chords and strumming for beginners.", "Music", models.PostTypeOffer},
		{"Help with Spanish", "Looking for someone to practice conversation with.", "Languages", models.PostTypeRequest},
	}},
	{"Bea Demo", "bea@skillswap.local", []demoPost{
		{"Intro to Go", "Walk through a small web service in Go.", "Programming", models.PostTypeOffer},
	}},
	{"Cal Demo", "cal@skillswap.local", []demoPost{
		{"Fix my resume", "Need a second pair of eyes on my CV.", "Career", models.PostTypeRequest},
	}},
}

// Run creates demo users and posts. It does nothing when they already exist.
func Run(db *gorm.DB) error {
	emails := make([]string, 0, len(demoUsers))
	for _, u := range demoUsers {
		emails = append(emails, u.Email)
	}

	var count int64
	if err := db.Model(&models.User{}).Where("email IN ?", emails).Count(&count).Error; err != nil {
		return fmt.Errorf("seed check: %w", err)
	}
	if count >= int64(len(demoUsers)) {
		logger.Log.Info("seed already applied, skipping")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}

	users, posts := 0, 0
	err = db.Transaction(func(tx *gorm.DB) error {
		for _, u := range demoUsers {
			var existing int64
			if err := tx.Model(&models.User{}).Where("email = ?", u.Email).Count(&existing).Error; err != nil {
				return err
			}
			if existing > 0 {
				continue
			}

			user := models.User{
				Name:       u.Name,
				Email:      u.Email,
				Password:   string(hash),
				HelpPoints: models.StartingHelpPoints,
			}
			if err := tx.Create(&user).Error; err != nil {
				return err
			}
			users++
			for _, p := range u.Posts {
				post := models.Post{
					Title:       p.Title,
					Description: p.Description,
					Category:    p.Category,
					Type:        p.Type,
					OwnerID:     user.ID,
				}
				if err := tx.Create(&post).Error; err != nil {
					return err
				}
				posts++
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}

	logger.Sugar().Infow("seeded demo data", "users", users, "posts", posts)
	return nil
}
