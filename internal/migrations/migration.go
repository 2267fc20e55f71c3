package migrations

import (
	"log"
	"strconv"
	"time"

	"github.com/ankirsydii/Orderly/internal/models"
	"github.com/ankirsydii/Orderly/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seed creates the default admin account and a starter menu on an empty
// database. Existing data is never touched.
func Seed(db *gorm.DB, adminEmail, adminPassword string) error {
	if err := seedAdmin(db, adminEmail, adminPassword); err != nil {
		return err
	}
	return seedMenu(db)
}

func seedAdmin(db *gorm.DB, email, password string) error {
	credentialRepo := repository.NewCredentialRepository(db)
	userRepo := repository.NewUserRepository(db)

	if _, err := credentialRepo.GetByEmail(email); err == nil {
		log.Println("Default admin already exists")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	credential := &models.Credential{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}
	if err := credentialRepo.Create(credential); err != nil {
		return err
	}

	user := &models.User{
		ID:       credential.ID,
		FullName: "Owner",
		Email:    email,
		Role:     string(models.RoleAdmin),
	}
	if err := userRepo.Create(user); err != nil {
		// Same cleanup the registration flow does: no credential without
		// a profile.
		if delErr := credentialRepo.Delete(credential.ID); delErr != nil {
			log.Printf("Warning: failed to clean up seeded credential: %v", delErr)
		}
		return err
	}

	log.Printf("Created default admin account (%s)", email)
	return nil
}

func seedMenu(db *gorm.DB) error {
	productRepo := repository.NewProductRepository(db)

	existing, err := productRepo.GetAll()
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	log.Println("Seeding starter menu...")
	starters := []models.Product{
		{Name: "Es Teh Manis", Price: 5000, Category: string(models.CategoryMinuman)},
		{Name: "Kopi Susu", Price: 12000, Category: string(models.CategoryMinuman)},
		{Name: "Boba Brown Sugar", Price: 18000, Category: string(models.CategoryBoba)},
		{Name: "Nasi Goreng", Price: 20000, Category: string(models.CategoryNasi)},
		{Name: "Kentang Goreng", Price: 10000, Category: string(models.CategorySnack)},
	}
	base := time.Now().UnixMilli()
	for i := range starters {
		// Timestamp-derived IDs like admin-created products; offset keeps
		// them distinct within one millisecond.
		starters[i].ID = strconv.FormatInt(base+int64(i), 10)
		starters[i].ColorHex = models.DefaultProductColor
		starters[i].IsAvailable = true
		if err := productRepo.Create(&starters[i]); err != nil {
			return err
		}
	}
	return nil
}
