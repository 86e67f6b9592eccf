package database

import (
	"log"

	"rateapp/config"
	"rateapp/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type bootstrapProfile struct {
	Username string
	Password string
	IsAdmin  bool
}

// The app serves a fixed set of participant profiles. They are created on
// first start; passwords are only defaults and are meant to be changed.
var bootstrapProfiles = []bootstrapProfile{
	{Username: "p1", Password: "p1pass", IsAdmin: false},
	{Username: "p2", Password: "p2pass", IsAdmin: false},
	{Username: "p3", Password: "p3pass", IsAdmin: true},
	{Username: "p4", Password: "p4pass", IsAdmin: false},
}

// SeedProfiles ensures the bootstrap participant profiles exist
func SeedProfiles(db *gorm.DB) {
	for _, profile := range bootstrapProfiles {
		var user models.User
		err := db.Where("username = ?", profile.Username).First(&user).Error
		if err == nil {
			// Keep the designated admin profile privileged and usable
			if profile.IsAdmin && !user.IsAdmin {
				user.IsAdmin = true
				user.IsBlocked = false
				if err := db.Save(&user).Error; err != nil {
					log.Printf("Error updating bootstrap user %s: %v", profile.Username, err)
				}
			}
			continue
		}
		if err != gorm.ErrRecordNotFound {
			log.Printf("Error looking up bootstrap user %s: %v", profile.Username, err)
			continue
		}

		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(profile.Password), config.AppConfig.SaltRound)
		if err != nil {
			log.Printf("Error hashing password for bootstrap user %s: %v", profile.Username, err)
			continue
		}

		newUser := models.User{
			Username: profile.Username,
			Password: string(hashedPassword),
			IsAdmin:  profile.IsAdmin,
		}
		if err := db.Create(&newUser).Error; err != nil {
			log.Printf("Error creating bootstrap user %s: %v", profile.Username, err)
			continue
		}
	}

	log.Println("Bootstrap profiles ready (p1, p2, p3, p4)")
}
