package mongodb

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go-skillmarket-backend/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type userRepo struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) domain.UserRepository {
	return &userRepo{coll: db.Collection("users")}
}

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	user.ID = primitive.NewObjectID()
	_, err := r.coll.InsertOne(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrDuplicate
	}
	return err
}

func (r *userRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	var user domain.User
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := r.coll.FindOne(ctx, bson.M{"email": strings.ToLower(email)}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) Update(ctx context.Context, user *domain.User) error {
	user.UpdatedAt = time.Now()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrDuplicate
	}
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *userRepo) UpdateLastLogin(ctx context.Context, id primitive.ObjectID, at time.Time) error {
	_, err := r.coll.UpdateByID(ctx, id, bson.M{"$set": bson.M{"last_login": at}})
	return err
}

func (r *userRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *userRepo) Search(ctx context.Context, filter domain.UserFilter, page domain.PageQuery) ([]domain.User, int64, error) {
	// Private and deactivated profiles never show up in search.
	f := NewFilter(bson.M{"is_active": true, "preferences.privacy": bson.M{"$ne": domain.PrivacyPrivate}}).
		RegexAny([]string{"first_name", "last_name", "bio", "professional_info.title", "professional_info.company"}, filter.Query).
		RegexAny([]string{"location.city", "location.state", "location.country"}, filter.Location).
		Regex("professional_info.industry", filter.Industry)

	if filter.Experience != "" {
		// "3" or "3-5"; only the lower bound participates
		if minExp, err := strconv.ParseFloat(strings.SplitN(filter.Experience, "-", 2)[0], 64); err == nil {
			f.GTE("professional_info.experience", minExp)
		}
	}

	users := []domain.User{}
	total, err := findPage(ctx, r.coll, f.Build(), page, &users)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}
