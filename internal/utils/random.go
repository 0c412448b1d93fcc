package utils

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/ucin-dev/workload-tracker/backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

var sampleFirstNames = []string{
	"Camila", "Valentina", "Sofía", "Isidora", "Antonia", "Francisca",
	"Matías", "Benjamín", "Vicente", "Joaquín", "Diego", "Tomás",
	"María", "Catalina", "Javiera", "Sebastián", "Felipe", "Nicolás",
}

var sampleLastNames = []string{
	"González", "Muñoz", "Rojas", "Díaz", "Pérez", "Soto", "Contreras",
	"Silva", "Martínez", "Sepúlveda", "Morales", "Rodríguez", "López",
	"Fuentes", "Hernández", "Torres", "Araya", "Flores", "Espinoza",
}

func GenerateRandomFullName() string {
	first := sampleFirstNames[rand.Intn(len(sampleFirstNames))]
	last := sampleLastNames[rand.Intn(len(sampleLastNames))]
	return first + " " + last
}

var accentReplacer = strings.NewReplacer(
	"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ñ", "n", "ü", "u",
)

// GenerateUsernameFromFullName derives a login from "First Last": first
// initial plus last name, lowercased and de-accented, with a random numeric
// suffix to keep collisions unlikely.
func GenerateUsernameFromFullName(fullName string) string {
	parts := strings.Fields(strings.ToLower(fullName))
	username := ""
	if len(parts) > 0 {
		username = parts[0][:1]
	}
	if len(parts) > 1 {
		username += parts[len(parts)-1]
	}
	username = accentReplacer.Replace(username)

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		username += string(digits[rand.Intn(len(digits))])
	}

	return username
}

var staffRoles = []domain.Role{
	domain.RoleNurse,
	domain.RoleKinesiologist,
}

func GenerateRandomRole() domain.Role {
	return staffRoles[rand.Intn(len(staffRoles))]
}

func GenerateRandomStaffMember(password string, emailDomainName string) (*domain.StaffMember, error) {
	fullName := GenerateRandomFullName()
	username := GenerateUsernameFromFullName(fullName)
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &domain.StaffMember{
		Username:     username,
		PasswordHash: string(passwordHash),
		FullName:     fullName,
		Email:        username + "@" + emailDomainName,
		Role:         GenerateRandomRole(),
	}, nil
}

// GenerateRandomPatientReference produces a national-ID style reference
// matching the validation pattern.
func GenerateRandomPatientReference() string {
	checkDigits := "0123456789K"
	return fmt.Sprintf("%d-%c", rand.Intn(15000000)+5000000, checkDigits[rand.Intn(len(checkDigits))])
}

var digits = "0123456789"

func GenerateRandomOTP() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	password := make([]rune, length)
	for i := range password {
		password[i] = letters[rand.Intn(len(letters))]
	}
	return string(password)
}
