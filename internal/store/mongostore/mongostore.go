// Package mongostore implements store.Store on MongoDB. Interest toggles
// use pipeline updates and thread inserts use positional $push so every
// write is a single server-side operation.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"feedthread/internal/interest"
	"feedthread/internal/models"
	"feedthread/internal/store"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

type Store struct {
	client   *mongo.Client
	users    *mongo.Collection
	articles *mongo.Collection
	labels   *mongo.Collection
}

var _ store.Store = (*Store)(nil)

// Connect dials uri, pings the primary and opens database name.
func Connect(ctx context.Context, uri, name string) (*Store, error) {
	opts := options.Client().ApplyURI(uri).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))
	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return New(client, name), nil
}

func New(client *mongo.Client, name string) *Store {
	db := client.Database(name)
	return &Store{
		client:   client,
		users:    db.Collection(string(store.Users)),
		articles: db.Collection(string(store.Articles)),
		labels:   db.Collection(string(store.Labels)),
	}
}

// EnsureIndexes creates the index backing the paged list query.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.articles.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "classify", Value: 1}, {Key: "created_at", Value: 1}, {Key: "_id", Value: 1}},
	})
	return err
}

func notFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return store.ErrNotFound
	}
	return err
}

func (s *Store) GetUser(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := s.users.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, notFound(err)
	}
	u.Normalize()
	return &u, nil
}

func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	u.Normalize()
	_, err := s.users.InsertOne(ctx, u)
	return err
}

func (s *Store) GetArticle(ctx context.Context, id string) (*models.Article, error) {
	var a models.Article
	if err := s.articles.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		return nil, notFound(err)
	}
	a.Normalize()
	return &a, nil
}

func (s *Store) CreateArticle(ctx context.Context, a *models.Article) error {
	a.Normalize()
	_, err := s.articles.InsertOne(ctx, a)
	return err
}

func (s *Store) ListArticles(ctx context.Context, q store.ArticleQuery) ([]models.Article, error) {
	filter, opts := listQuery(q)
	cur, err := s.articles.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var out []models.Article
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Normalize()
	}
	return out, nil
}

func listQuery(q store.ArticleQuery) (bson.M, *options.FindOptionsBuilder) {
	filter := bson.M{}
	if !q.All {
		filter["classify"] = q.Classify
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})
	if q.Skip > 0 {
		opts.SetSkip(int64(q.Skip))
	}
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}
	proj := bson.M{}
	if q.OmitContent {
		proj["content"] = 0
	}
	if q.OmitComments {
		proj["comments"] = 0
	}
	if len(proj) > 0 {
		opts.SetProjection(proj)
	}
	return filter, opts
}

// ListComments flattens the article's comments array with an aggregation
// so the rest of the document never leaves the server.
func (s *Store) ListComments(ctx context.Context, articleID string) ([]models.Comment, error) {
	if err := s.articleExists(ctx, articleID); err != nil {
		return nil, err
	}
	cur, err := s.articles.Aggregate(ctx, commentsPipeline(articleID))
	if err != nil {
		return nil, err
	}
	out := []models.Comment{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	for i := range out {
		if out[i].Replys == nil {
			out[i].Replys = []models.Reply{}
		}
	}
	return out, nil
}

func commentsPipeline(articleID string) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"_id": articleID}}},
		{{Key: "$unwind", Value: "$comments"}},
		{{Key: "$replaceRoot", Value: bson.M{"newRoot": "$comments"}}},
	}
}

func (s *Store) articleExists(ctx context.Context, id string) error {
	n, err := s.articles.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) ToggleMember(ctx context.Context, userID string, set models.InterestSet, target string) ([]string, bool, error) {
	if !set.Valid() {
		return nil, false, fmt.Errorf("unknown interest set %q", set)
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var u models.User
	err := s.users.FindOneAndUpdate(ctx, bson.M{"_id": userID}, toggleUpdate(set, target), opts).Decode(&u)
	if err != nil {
		return nil, false, notFound(err)
	}
	members := u.Interests(set)
	if members == nil {
		members = []string{}
	}
	return members, interest.Contains(members, target), nil
}

// toggleUpdate builds a pipeline update that removes target from the set
// when present and appends it otherwise, evaluated atomically per document.
func toggleUpdate(set models.InterestSet, target string) mongo.Pipeline {
	field := string(set)
	current := bson.M{"$ifNull": bson.A{"$" + field, bson.A{}}}
	lit := bson.M{"$literal": target}
	return mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			field: bson.M{"$cond": bson.A{
				bson.M{"$in": bson.A{lit, current}},
				bson.M{"$filter": bson.M{
					"input": current,
					"cond":  bson.M{"$ne": bson.A{"$$this", lit}},
				}},
				bson.M{"$concatArrays": bson.A{current, bson.A{lit}}},
			}},
		}}},
	}
}

func (s *Store) AddMemberIfAbsent(ctx context.Context, userID string, set models.InterestSet, target string) (bool, error) {
	if !set.Valid() {
		return false, fmt.Errorf("unknown interest set %q", set)
	}
	filter, update := addIfAbsent(userID, set, target)
	res, err := s.users.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	if res.MatchedCount == 1 {
		return true, nil
	}
	n, err := s.users.CountDocuments(ctx, bson.M{"_id": userID})
	if err != nil {
		return false, err
	}
	if n == 0 {
		return false, store.ErrNotFound
	}
	return false, nil
}

func addIfAbsent(userID string, set models.InterestSet, target string) (bson.M, bson.M) {
	field := string(set)
	filter := bson.M{"_id": userID, field: bson.M{"$ne": target}}
	update := bson.M{"$addToSet": bson.M{field: target}}
	return filter, update
}

func (s *Store) Apply(ctx context.Context, p store.Patch) error {
	filter, update, err := translate(p)
	if err != nil {
		return err
	}
	res, err := s.collection(p.Collection).UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount > 0 {
		return nil
	}
	n, err := s.collection(p.Collection).CountDocuments(ctx, bson.M{"_id": p.DocID})
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return store.ErrConflict
}

func (s *Store) collection(c store.Collection) *mongo.Collection {
	switch c {
	case store.Users:
		return s.users
	case store.Labels:
		return s.labels
	}
	return s.articles
}

// translate turns a patch into an UpdateOne filter and update document.
// Paths render in dotted form so comments.3.replys addresses one element.
func translate(p store.Patch) (bson.M, bson.M, error) {
	if err := p.Validate(); err != nil {
		return nil, nil, err
	}
	filter := bson.M{"_id": p.DocID}
	if p.Guard != nil {
		filter[p.Guard.Path.String()] = p.Guard.Equals
	}

	var update bson.M
	switch p.Op {
	case store.OpUnshift:
		update = bson.M{"$push": bson.M{p.Path.String(): bson.M{
			"$each":     bson.A{p.Value},
			"$position": 0,
		}}}
	case store.OpInc:
		update = bson.M{"$inc": bson.M{p.Path.String(): p.Value}}
	}
	return filter, update, nil
}

func (s *Store) ListLabels(ctx context.Context) ([]models.Label, error) {
	cur, err := s.labels.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "sort", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	out := []models.Label{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Store) SaveLabels(ctx context.Context, labels []models.Label) error {
	for _, l := range labels {
		_, err := s.labels.ReplaceOne(ctx, bson.M{"_id": l.ID}, l, options.Replace().SetUpsert(true))
		if err != nil {
			return fmt.Errorf("save label %s: %w", l.ID, err)
		}
	}
	return nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
