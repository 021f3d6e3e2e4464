package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	emailKey    = "personal_info.email"
	usernameKey = "personal_info.username"

	// Key derived names, the same ones mongoose gives these indexes, so an
	// existing collection is left as is.
	usernameIndex = usernameKey + "_1"
)

type mongoAccountRepository struct {
	collection *mongo.Collection
}

type dbAccount struct {
	ID           ID             `bson:"_id"`
	PersonalInfo dbPersonalInfo `bson:"personal_info"`
	JoinedAt     time.Time      `bson:"joinedAt"`
}

type dbPersonalInfo struct {
	Fullname     string `bson:"fullname"`
	Email        string `bson:"email"`
	Password     string `bson:"password"`
	Username     string `bson:"username"`
	ProfileImage string `bson:"profile_img"`
}

func NewMongoAccountRepository(c *mongo.Collection) Repository {
	return &mongoAccountRepository{collection: c}
}

// EnsureIndexes creates the unique indexes on email and username. They are what
// keeps concurrent signups from producing duplicate accounts. Creating an index
// that already exists with the same keys and options is a no-op.
func EnsureIndexes(ctx context.Context, c *mongo.Collection) error {
	_, err := c.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: emailKey, Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: usernameKey, Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	return err
}

func (m *mongoAccountRepository) Store(ctx context.Context, acc *Account) error {
	dba := dbAccountFromAccount(acc)
	dba.ID = NewID()

	if _, err := m.collection.InsertOne(ctx, &dba); err != nil {
		return translateMongoError(err)
	}

	acc.ID = dba.ID
	return nil
}

func (m *mongoAccountRepository) FindByID(ctx context.Context, id ID) (*Account, error) {
	return m.findAccountBy(ctx, "_id", string(id))
}

func (m *mongoAccountRepository) FindByEmail(ctx context.Context, email string) (*Account, error) {
	return m.findAccountBy(ctx, emailKey, email)
}

func (m *mongoAccountRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	opts := options.FindOne().SetProjection(bson.M{"_id": 1})
	err := m.collection.FindOne(ctx, bson.M{usernameKey: username}, opts).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, translateMongoError(err)
	}
	return true, nil
}

func (m *mongoAccountRepository) Ping(ctx context.Context) error {
	return m.collection.Database().Client().Ping(ctx, readpref.Primary())
}

func (m *mongoAccountRepository) findAccountBy(ctx context.Context, key string, val string) (*Account, error) {
	var dba dbAccount
	sr := m.collection.FindOne(ctx, bson.M{key: val})

	if errors.Is(sr.Err(), mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}

	if err := sr.Decode(&dba); err != nil {
		return nil, translateMongoError(err)
	}

	acc := accountFromDBAccount(dba)
	return &acc, nil
}

func translateMongoError(err error) error {
	if !mongo.IsDuplicateKeyError(err) {
		return &StorageError{Kind: StorageFailure, Err: err}
	}

	field := fieldEmail
	if strings.Contains(err.Error(), usernameIndex) {
		field = fieldUsername
	}
	return &StorageError{Kind: DuplicateKey, Field: field, Err: err}
}

func dbAccountFromAccount(a *Account) dbAccount {
	c := a.Credentials
	return dbAccount{
		ID:           a.ID,
		PersonalInfo: dbPersonalInfo{c.Fullname, c.Email, c.Password, c.Username, c.ProfileImage},
		JoinedAt:     a.CreatedAt,
	}
}

func accountFromDBAccount(d dbAccount) Account {
	p := d.PersonalInfo
	return Account{
		ID: d.ID,
		Credentials: Credentials{
			Fullname:     p.Fullname,
			Email:        p.Email,
			Username:     p.Username,
			Password:     p.Password,
			ProfileImage: p.ProfileImage,
		},
		CreatedAt: d.JoinedAt,
	}
}
