package users

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/gaysay/backoffice/internal/apperrors"
	"github.com/gaysay/backoffice/internal/domain/models"
)

type fakeRepo struct {
	users map[primitive.ObjectID]*models.User
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: make(map[primitive.ObjectID]*models.User)}
}

func (f *fakeRepo) ListUsers(_ context.Context) ([]models.User, error) {
	var accounts []models.User
	for _, u := range f.users {
		accounts = append(accounts, *u)
	}
	return accounts, nil
}

func (f *fakeRepo) FindUserByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperrors.NotFound("User not found.")
	}
	clone := *u
	return &clone, nil
}

func (f *fakeRepo) InsertUser(_ context.Context, user *models.User) error {
	for _, existing := range f.users {
		if existing.Username == user.Username {
			return apperrors.Conflict("Username already exists.")
		}
	}
	user.ID = primitive.NewObjectID()
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeRepo) UpdateUser(_ context.Context, id primitive.ObjectID, update models.UserUpdate) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperrors.NotFound("User not found.")
	}
	if update.Name != nil {
		u.Name = *update.Name
	}
	if update.Username != nil {
		u.Username = *update.Username
	}
	if update.Role != nil {
		u.Role = *update.Role
	}
	if update.AvatarURL != nil {
		u.AvatarURL = *update.AvatarURL
	}
	clone := *u
	return &clone, nil
}

func (f *fakeRepo) UpdateUserPassword(_ context.Context, id primitive.ObjectID, passwordHash string) error {
	u, ok := f.users[id]
	if !ok {
		return apperrors.NotFound("User not found.")
	}
	u.PasswordHash = passwordHash
	return nil
}

func (f *fakeRepo) DeleteUser(_ context.Context, id primitive.ObjectID) error {
	if _, ok := f.users[id]; !ok {
		return apperrors.NotFound("User not found.")
	}
	delete(f.users, id)
	return nil
}

func validInput() CreateUserInput {
	return CreateUserInput{
		Name:     "Abel Girma",
		Username: "Abel",
		Password: "correct horse",
		Role:     models.RoleEmployee,
	}
}

func TestCreateHashesPasswordAndNormalizesUsername(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil)

	user, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	assert.Equal(t, "abel", user.Username)
	assert.NotEqual(t, "correct horse", user.PasswordHash, "passwords are never stored in the clear")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("correct horse")))
}

func TestCreateValidation(t *testing.T) {
	svc := NewService(newFakeRepo(), nil)

	missing := validInput()
	missing.Username = "  "
	_, err := svc.Create(context.Background(), missing)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	short := validInput()
	short.Password = "short"
	_, err = svc.Create(context.Background(), short)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	badRole := validInput()
	badRole.Role = "barista"
	_, err = svc.Create(context.Background(), badRole)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestCreateDuplicateUsernameConflicts(t *testing.T) {
	svc := NewService(newFakeRepo(), nil)

	_, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	// Normalization makes "ABEL" collide with "abel".
	dup := validInput()
	dup.Username = "ABEL"
	_, err = svc.Create(context.Background(), dup)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestChangePassword(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil)

	user, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)
	oldHash := repo.users[user.ID].PasswordHash

	err = svc.ChangePassword(context.Background(), user.ID.Hex(), "brand-new-pass")
	require.NoError(t, err)

	newHash := repo.users[user.ID].PasswordHash
	assert.NotEqual(t, oldHash, newHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(newHash), []byte("brand-new-pass")))

	err = svc.ChangePassword(context.Background(), user.ID.Hex(), "short")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestUpdateRejectsEmptyAndInvalid(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil)

	user, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), user.ID.Hex(), models.UserUpdate{})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	badRole := "barista"
	_, err = svc.Update(context.Background(), user.ID.Hex(), models.UserUpdate{Role: &badRole})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	name := "Abel G."
	updated, err := svc.Update(context.Background(), user.ID.Hex(), models.UserUpdate{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Abel G.", updated.Name)
}
