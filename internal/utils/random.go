package utils

import (
	"fmt"
	"math/rand"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/mercato-dev/roster-manager/backend/internal/domain"
)

var commonFirstNames = []string{
	"Juan", "María", "Carlos", "Ana", "Luis", "Lucía", "Jorge", "Sofía",
	"Pedro", "Valentina", "Diego", "Camila", "Andrés", "Paula", "Martín",
	"Elena", "Raúl", "Carmen", "Óscar", "Inés",
}
var commonSurnames = []string{
	"García", "Rodríguez", "Martínez", "López", "González", "Pérez",
	"Sánchez", "Ramírez", "Torres", "Flores", "Rivera", "Gómez",
	"Díaz", "Cruz", "Morales", "Ortiz", "Gutiérrez", "Chávez",
	"Ramos", "Vargas",
}

func GenerateRandomFullName() string {
	first := commonFirstNames[rand.Intn(len(commonFirstNames))]
	surname := commonSurnames[rand.Intn(len(commonSurnames))]
	return first + " " + surname
}

var roles = []domain.Role{
	domain.RoleAdministrator,
	domain.RoleCoordinator,
	domain.RoleManager,
}

func GenerateRandomRole() domain.Role {
	return roles[rand.Intn(len(roles))]
}

var digits = "0123456789"

// foldAccents strips diacritics so "García" becomes "garcia".
var foldAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// UsernameFromFullName builds an ascii login name from a display name:
// accent-folded, lowercased, first name joined to surname, plus a few
// random digits to dodge collisions.
func UsernameFromFullName(fullName string) string {
	folded, _, err := transform.String(foldAccents, fullName)
	if err != nil {
		folded = fullName
	}

	parts := strings.Fields(strings.ToLower(folded))
	username := ""
	if len(parts) > 0 {
		username = parts[0]
	}
	if len(parts) > 1 {
		username += string(parts[len(parts)-1][0])
	}

	digitsLength := rand.Intn(3) + 1
	for i := 0; i < digitsLength; i++ {
		username += string(digits[rand.Intn(len(digits))])
	}

	return username
}

func GenerateRandomUser(password string, emailDomainName string) (*domain.User, error) {
	fullName := GenerateRandomFullName()
	username := UsernameFromFullName(fullName)
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: string(passwordHash),
		FullName:     fullName,
		Email:        username + "@" + emailDomainName,
		Role:         GenerateRandomRole(),
	}

	return user, nil
}

var availableDayPool = []string{
	"Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado", "Domingo",
}

// GenerateRandomAvailableDays keeps a random prefix of a shuffled week
// (Fisher-Yates), at least one day.
func GenerateRandomAvailableDays() []string {
	days := append([]string{}, availableDayPool...)
	for i := len(days) - 1; i > 0; i-- {
		j := rand.Intn(i + 1)
		days[i], days[j] = days[j], days[i]
	}
	n := rand.Intn(len(days)) + 1
	return days[:n]
}

var positions = []domain.Position{
	domain.PositionC1, domain.PositionC2, domain.PositionC3, domain.PositionEXT,
}
var branches = []string{"001", "002", "003"}
var windows = []domain.Window{
	domain.WindowMorning, domain.WindowAfternoon, domain.WindowNight,
}

func GenerateRandomEmployee(emailDomainName string) *domain.Employee {
	fullName := GenerateRandomFullName()
	username := UsernameFromFullName(fullName)
	return &domain.Employee{
		ID:            uuid.NewString(),
		FullName:      fullName,
		Department:    "ventas",
		Email:         username + "@" + emailDomainName,
		Phone:         fmt.Sprintf("+34 6%08d", rand.Intn(100000000)),
		AvailableDays: GenerateRandomAvailableDays(),
		ShiftWindow:   windows[rand.Intn(len(windows))],
		Branch:        branches[rand.Intn(len(branches))],
		Division:      "retail",
		MaxHoursWeek:  40,
	}
}

func GenerateRandomPosition() domain.Position {
	return positions[rand.Intn(len(positions))]
}

func GenerateRandomOTP() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}

var letters = []rune("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*")

func GenerateRandomPassword(length int) string {
	random_password := make([]rune, length)
	for i := range random_password {
		random_password[i] = letters[rand.Intn(len(letters))]
	}
	return string(random_password)
}
