package mongo

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/yoockh/resumecraft/internal/models"
	"github.com/yoockh/resumecraft/internal/repositories"
	"github.com/yoockh/resumecraft/internal/utils"
)

const ResumesCollection = "resumes"

type resumeRepo struct {
	col *mongo.Collection
	now func() time.Time
}

func NewResumeRepo(db *mongo.Database) repositories.ResumeRepository {
	return &resumeRepo{col: db.Collection(ResumesCollection), now: func() time.Time { return time.Now().UTC() }}
}

func ownedFilter(id, ownerID string) bson.M {
	return bson.M{"_id": id, "owner_id": ownerID}
}

// setDoc builds the $set document for a patch, normalizing each set field
// the same way models.Normalize would.
func setDoc(p models.ResumePatch, now time.Time) bson.M {
	var n models.Resume
	p.Apply(&n)

	set := bson.M{"updated_at": now}
	if p.Title != nil {
		set["title"] = n.Title
	}
	if p.PersonalDetails != nil {
		set["personal_details"] = n.PersonalDetails
	}
	if p.Summary != nil {
		set["summary"] = n.Summary
	}
	if p.Education != nil {
		set["education"] = n.Education
	}
	if p.Experience != nil {
		set["experience"] = n.Experience
	}
	if p.Projects != nil {
		set["projects"] = n.Projects
	}
	if p.Skills != nil {
		set["skills"] = n.Skills
	}
	if p.Achievements != nil {
		set["achievements"] = n.Achievements
	}
	if p.Hobbies != nil {
		set["hobbies"] = n.Hobbies
	}
	if p.Score != nil {
		set["score"] = n.Score
	}
	if p.SelectedTemplate != nil {
		set["selected_template"] = n.SelectedTemplate
	}
	return set
}

// searchFilter matches title or full name, case-insensitively, as a literal.
func searchFilter(q models.ListQuery) bson.M {
	term := strings.TrimSpace(q.Search)
	if term == "" {
		return bson.M{}
	}
	rx := bson.M{"$regex": regexp.QuoteMeta(term), "$options": "i"}
	return bson.M{"$or": bson.A{
		bson.M{"title": rx},
		bson.M{"personal_details.full_name": rx},
	}}
}

func (r *resumeRepo) Create(ctx context.Context, doc *models.Resume) (string, error) {
	*doc = models.Normalize(*doc)
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	now := r.now()
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = now
	}
	doc.UpdatedAt = now

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", utils.ErrDuplicate
		}
		return "", err
	}
	return doc.ID, nil
}

func (r *resumeRepo) Update(ctx context.Context, id, ownerID string, p models.ResumePatch) (*models.Resume, error) {
	var out models.Resume
	err := r.col.FindOneAndUpdate(ctx,
		ownedFilter(id, ownerID),
		bson.M{"$set": setDoc(p, r.now())},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	out = models.Normalize(out)
	return &out, nil
}

func (r *resumeRepo) Get(ctx context.Context, id, ownerID string) (*models.Resume, error) {
	return r.findOne(ctx, ownedFilter(id, ownerID))
}

func (r *resumeRepo) GetAny(ctx context.Context, id string) (*models.Resume, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *resumeRepo) findOne(ctx context.Context, filter bson.M) (*models.Resume, error) {
	var out models.Resume
	err := r.col.FindOne(ctx, filter).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	out = models.Normalize(out)
	return &out, nil
}

func (r *resumeRepo) ListByOwner(ctx context.Context, ownerID string) ([]models.Resume, error) {
	return r.find(ctx, bson.M{"owner_id": ownerID},
		options.Find().SetSort(bson.D{{Key: "updated_at", Value: -1}}))
}

func (r *resumeRepo) List(ctx context.Context, q models.ListQuery) ([]models.Resume, int64, error) {
	q = q.Normalized()
	filter := searchFilter(q)

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	items, err := r.find(ctx, filter,
		options.Find().
			SetSort(bson.D{{Key: "updated_at", Value: -1}}).
			SetSkip(int64(q.Offset())).
			SetLimit(int64(q.Limit)),
	)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *resumeRepo) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Resume, error) {
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Resume{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	for i := range out {
		out[i] = models.Normalize(out[i])
	}
	return out, nil
}

func (r *resumeRepo) Delete(ctx context.Context, id, ownerID string) error {
	res, err := r.col.DeleteOne(ctx, ownedFilter(id, ownerID))
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return utils.ErrNotFound
	}
	return nil
}

func (r *resumeRepo) DeleteByOwner(ctx context.Context, ownerID string) (int64, error) {
	res, err := r.col.DeleteMany(ctx, bson.M{"owner_id": ownerID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (r *resumeRepo) Count(ctx context.Context) (int64, error) {
	return r.col.EstimatedDocumentCount(ctx)
}
