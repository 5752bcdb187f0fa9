package storage

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"NewsPlatter/internal/ports"
)

// FirestoreStore maps collections and documents one to one onto Firestore.
type FirestoreStore struct {
	client *firestore.Client
}

var _ ports.DocumentStore = (*FirestoreStore)(nil)

// NewFirestoreStore connects to projectID, detected from the environment when
// empty. credentialsFile is optional.
func NewFirestoreStore(ctx context.Context, projectID, credentialsFile string) (*FirestoreStore, error) {
	if projectID == "" {
		projectID = firestore.DetectProjectID
	}

	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("firestore client: %w", err)
	}
	return &FirestoreStore{client: client}, nil
}

func (s *FirestoreStore) Get(ctx context.Context, collection, id string) (ports.Document, error) {
	snap, err := s.client.Collection(collection).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, ports.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}
	return snap.Data(), nil
}

func (s *FirestoreStore) Exists(ctx context.Context, collection string, ids []string) (map[string]bool, error) {
	result := make(map[string]bool, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	refs := make([]*firestore.DocumentRef, len(ids))
	for i, id := range ids {
		refs[i] = s.client.Collection(collection).Doc(id)
	}
	snaps, err := s.client.GetAll(ctx, refs)
	if err != nil {
		return nil, fmt.Errorf("get all %s: %w", collection, err)
	}
	for _, snap := range snaps {
		if snap.Exists() {
			result[snap.Ref.ID] = true
		}
	}
	return result, nil
}

func (s *FirestoreStore) Set(ctx context.Context, collection, id string, doc ports.Document, merge bool) error {
	ref := s.client.Collection(collection).Doc(id)
	var err error
	if merge {
		_, err = ref.Set(ctx, map[string]any(doc), firestore.MergeAll)
	} else {
		_, err = ref.Set(ctx, map[string]any(doc))
	}
	if err != nil {
		return fmt.Errorf("set %s/%s: %w", collection, id, err)
	}
	return nil
}

func (s *FirestoreStore) Query(ctx context.Context, collection string, q ports.Query) ([]ports.Document, error) {
	fq := s.client.Collection(collection).Query
	if q.RangeField != "" {
		if q.From != nil {
			fq = fq.Where(q.RangeField, ">=", q.From)
		}
		if q.To != nil {
			fq = fq.Where(q.RangeField, "<=", q.To)
		}
	}
	if q.MinField != "" {
		fq = fq.Where(q.MinField, ">", q.Above)
	}
	if q.OrderBy != "" {
		dir := firestore.Asc
		if q.Descending {
			dir = firestore.Desc
		}
		fq = fq.OrderBy(q.OrderBy, dir)
	}
	if q.Limit > 0 {
		fq = fq.Limit(q.Limit)
	}

	iter := fq.Documents(ctx)
	defer iter.Stop()

	var docs []ports.Document
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("query %s: %w", collection, err)
		}
		docs = append(docs, snap.Data())
	}
	return docs, nil
}

func (s *FirestoreStore) Close() error {
	return s.client.Close()
}
