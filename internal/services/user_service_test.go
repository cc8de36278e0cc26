package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"leadflow/internal/apperr"
	"leadflow/internal/models"
	"leadflow/internal/repositories"
)

type fakeUserRepo struct {
	byEmail map[string]*models.User
	byID    map[int]*models.User
	nextID  int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: map[string]*models.User{}, byID: map[int]*models.User{}}
}

func (f *fakeUserRepo) Create(u *models.User) error {
	f.nextID++
	u.ID = f.nextID
	f.byEmail[u.Email] = u
	f.byID[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetByID(id int) (*models.User, error)       { return f.byID[id], nil }
func (f *fakeUserRepo) GetByEmail(e string) (*models.User, error)  { return f.byEmail[e], nil }
func (f *fakeUserRepo) Update(u *models.User) error                { f.byID[u.ID] = u; return nil }
func (f *fakeUserRepo) Deactivate(id int) error {
	if u, ok := f.byID[id]; ok {
		u.IsActive = false
	}
	return nil
}
func (f *fakeUserRepo) List(_ repositories.UserFilter, _, _ int) ([]*models.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) Count() (int, error) { return len(f.byID), nil }

type fakeEmailService struct {
	sentTo []string
	err    error
}

func (f *fakeEmailService) SendWelcomeEmail(email, _ string) error {
	if f.err != nil {
		return f.err
	}
	f.sentTo = append(f.sentTo, email)
	return nil
}

func newUserServiceUnderTest(repo repositories.UserRepository, email EmailService) UserService {
	auth := NewAuthService([]byte("test-key"), time.Minute)
	return NewUserService(repo, email, auth)
}

func TestUserService_Create_HashesPassword(t *testing.T) {
	repo := newFakeUserRepo()
	email := &fakeEmailService{}
	svc := newUserServiceUnderTest(repo, email)

	u := &models.User{FirstName: "Ana", Email: "a@x.com", Role: "EMPLOYEE"}
	require.NoError(t, svc.Create(u, "secret1"))

	require.NotEqual(t, "secret1", u.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret1")))
	require.True(t, u.IsActive)
	require.False(t, u.CreatedAt.IsZero())
	require.Equal(t, []string{"a@x.com"}, email.sentTo)
}

func TestUserService_Create_DuplicateEmail(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newUserServiceUnderTest(repo, &fakeEmailService{})

	require.NoError(t, svc.Create(&models.User{FirstName: "Ana", Email: "a@x.com"}, "secret1"))

	err := svc.Create(&models.User{FirstName: "Other", Email: "a@x.com"}, "secret2")
	require.True(t, apperr.IsConflict(err))
	require.Equal(t, "User already exists", err.Error())
	require.Equal(t, 1, len(repo.byID))
}

func TestUserService_Create_EmailFailureDoesNotFail(t *testing.T) {
	repo := newFakeUserRepo()
	email := &fakeEmailService{err: errors.New("smtp down")}
	svc := newUserServiceUnderTest(repo, email)

	u := &models.User{FirstName: "Ana", Email: "a@x.com"}
	require.NoError(t, svc.Create(u, "secret1"))
	require.NotZero(t, u.ID)
}

func TestUserService_Create_EmptyPassword(t *testing.T) {
	svc := newUserServiceUnderTest(newFakeUserRepo(), &fakeEmailService{})

	err := svc.Create(&models.User{FirstName: "Ana", Email: "a@x.com"}, "   ")
	require.Error(t, err)
}

func TestUserService_Deactivate_Idempotent(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newUserServiceUnderTest(repo, &fakeEmailService{})

	u := &models.User{FirstName: "Ana", Email: "a@x.com"}
	require.NoError(t, svc.Create(u, "secret1"))

	require.NoError(t, svc.Deactivate(u.ID))
	require.NoError(t, svc.Deactivate(u.ID))

	got, err := svc.GetByID(u.ID)
	require.NoError(t, err)
	require.False(t, got.IsActive)
}
