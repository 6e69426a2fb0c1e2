package complaints

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/lucas24aguirre-lang/comuna-manantial/internal/pkg/logger"
)

// Repository is the Firestore gateway for the complaints collection.
type Repository struct {
	client     *firestore.Client
	collection string
}

func NewRepository(client *firestore.Client, collection string) *Repository {
	if collection == "" {
		collection = "complaints"
	}
	return &Repository{client: client, collection: collection}
}

func (r *Repository) col() *firestore.CollectionRef {
	return r.client.Collection(r.collection)
}

// Create inserts a new complaint. CreatedAt/UpdatedAt are server-assigned
// via the serverTimestamp struct tags.
func (r *Repository) Create(ctx context.Context, c *Complaint) (string, error) {
	ref, _, err := r.col().Add(ctx, c)
	if err != nil {
		return "", err
	}
	return ref.ID, nil
}

// UpdateDraft writes a draft's editable fields onto an existing document.
// Image fields are only touched when a new image was staged.
func (r *Repository) UpdateDraft(ctx context.Context, id string, d Draft) error {
	updates := []firestore.Update{
		{Path: "title", Value: d.Title},
		{Path: "category", Value: d.Category},
		{Path: "location", Value: d.Location},
		{Path: "description", Value: d.Description},
		{Path: "anonymous", Value: d.Anonymous},
		{Path: "updatedAt", Value: firestore.ServerTimestamp},
	}
	if d.HasStagedImage() {
		updates = append(updates,
			firestore.Update{Path: "imageUrl", Value: d.ImageURL},
			firestore.Update{Path: "imagePath", Value: d.ImagePath},
		)
	}

	_, err := r.col().Doc(id).Update(ctx, updates)
	return err
}

// IncrementVotes atomically bumps the vote counter.
func (r *Repository) IncrementVotes(ctx context.Context, id string) error {
	_, err := r.col().Doc(id).Update(ctx, []firestore.Update{
		{Path: "votes", Value: firestore.Increment(1)},
	})
	return err
}

// SetStatus writes the new status and refreshes updatedAt.
func (r *Repository) SetStatus(ctx context.Context, id, newStatus string) error {
	_, err := r.col().Doc(id).Update(ctx, []firestore.Update{
		{Path: "status", Value: newStatus},
		{Path: "updatedAt", Value: firestore.ServerTimestamp},
	})
	return err
}

// AppendComment atomically appends to the comment list.
func (r *Repository) AppendComment(ctx context.Context, id string, comment Comment) error {
	_, err := r.col().Doc(id).Update(ctx, []firestore.Update{
		{Path: "comments", Value: firestore.ArrayUnion(comment)},
	})
	return err
}

// Delete removes the complaint document.
func (r *Repository) Delete(ctx context.Context, id string) error {
	_, err := r.col().Doc(id).Delete(ctx)
	return err
}

// Listen subscribes to the live collection ordered by creation time,
// descending, and pushes every full snapshot to the callback. Snapshots
// arrive in receipt order and each one fully replaces the prior list, so
// partial or out-of-order updates cannot occur. Blocks until ctx is
// cancelled or the stream fails.
func (r *Repository) Listen(ctx context.Context, push func([]Complaint)) error {
	it := r.col().OrderBy("createdAt", firestore.Desc).Snapshots(ctx)
	defer it.Stop()

	for {
		snap, err := it.Next()
		if err != nil {
			if status.Code(err) == codes.Canceled {
				return nil
			}
			return err
		}

		docs, err := snap.Documents.GetAll()
		if err != nil {
			logger.Error("Failed to read complaints snapshot: %v", err)
			continue
		}

		list := make([]Complaint, 0, len(docs))
		for _, doc := range docs {
			var c Complaint
			if err := doc.DataTo(&c); err != nil {
				logger.Warn("Skipping malformed complaint %s: %v", doc.Ref.ID, err)
				continue
			}
			c.ID = doc.Ref.ID
			list = append(list, c)
		}

		push(list)
	}
}
