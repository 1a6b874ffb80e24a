package rag

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
)

var _ VectorIndex = &QdrantIndex{}

// QdrantIndex wraps Qdrant client and stores passages with their vectors
type QdrantIndex struct {
	client     *qdrant.Client
	collection string
}

// NewQdrantIndex creates a new Qdrant client
func NewQdrantIndex(host string, port int, collection string) (*QdrantIndex, error) {
	client, err := qdrant.NewClient(&qdrant.Config{
		Host: host,
		Port: port,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Qdrant client: %w", err)
	}

	return &QdrantIndex{
		client:     client,
		collection: collection,
	}, nil
}

func (qi *QdrantIndex) Name() string {
	return "qdrant"
}

// Close releases the gRPC connection
func (qi *QdrantIndex) Close() error {
	return qi.client.Close()
}

// EnsureCollection ensures the collection exists with the correct configuration
func (qi *QdrantIndex) EnsureCollection(ctx context.Context, vectorSize uint64) error {
	// Check if collection exists by trying to get it
	_, err := qi.client.GetCollectionInfo(ctx, qi.collection)
	if err == nil {
		return nil // Collection exists
	}

	err = qi.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: qi.collection,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	return nil
}

// Upsert stores the points, keyed by a UUIDv5 of the passage ID so
// re-ingesting a document overwrites its previous points
func (qi *QdrantIndex) Upsert(ctx context.Context, points []Point) error {
	pointsToUpsert := make([]*qdrant.PointStruct, 0, len(points))
	for _, p := range points {
		metadata := make(map[string]any, len(p.Passage.Metadata))
		for k, v := range p.Passage.Metadata {
			metadata[k] = v
		}

		pointsToUpsert = append(pointsToUpsert, &qdrant.PointStruct{
			Id:      qdrant.NewIDUUID(PointID(p.ID)),
			Vectors: qdrant.NewVectors(p.Vector...),
			Payload: qdrant.NewValueMap(map[string]any{
				"passage_id": p.Passage.ID,
				"doc_id":     p.Passage.DocumentID,
				"text":       p.Passage.Text,
				"seq":        int64(p.Passage.Seq),
				"metadata":   metadata,
			}),
		})
	}

	_, err := qi.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: qi.collection,
		Points:         pointsToUpsert,
	})
	if err != nil {
		return fmt.Errorf("failed to upsert points: %w", err)
	}
	return nil
}

// Search searches for similar vectors in the collection using Qdrant Query API
func (qi *QdrantIndex) Search(ctx context.Context, vector []float32, limit uint64) ([]Match, error) {
	searchResult, err := qi.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: qi.collection,
		Query:          qdrant.NewQuery(vector...),
		Limit:          &limit,
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search: %w", err)
	}

	matches := make([]Match, 0, len(searchResult))
	for _, result := range searchResult {
		payload := result.GetPayload()
		text := payload["text"].GetStringValue()
		if text == "" {
			continue
		}

		metadata := map[string]string{}
		for k, v := range payload["metadata"].GetStructValue().GetFields() {
			metadata[k] = v.GetStringValue()
		}

		matches = append(matches, Match{
			Passage: Passage{
				ID:         payload["passage_id"].GetStringValue(),
				DocumentID: payload["doc_id"].GetStringValue(),
				Text:       text,
				Metadata:   metadata,
				Seq:        int(payload["seq"].GetIntegerValue()),
			},
			Similarity: result.GetScore(),
		})
	}

	return matches, nil
}

// PointID derives the stable point UUID for a passage ID
func PointID(passageID string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(passageID)).String()
}
