// Package qdrant provides a ChunkStore backed by a Qdrant instance
// over gRPC.
package qdrant

import (
	"context"
	"fmt"
	"sort"

	qdrantclient "github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/recall-labs/recall-cli/internal/core/domain"
	"github.com/recall-labs/recall-cli/internal/core/ports/driven"
	"github.com/recall-labs/recall-cli/internal/logger"
)

// Ensure ChunkStore implements the interface.
var _ driven.ChunkStore = (*ChunkStore)(nil)

// Payload field names.
const (
	fieldOwnerID    = "owner_id"
	fieldDocumentID = "document_id"
	fieldFilename   = "filename"
	fieldContent    = "content"
	fieldPosition   = "position"
)

// scrollPageSize is how many points ListFilenames pulls per page.
const scrollPageSize = 256

// Config holds Qdrant connection configuration.
type Config struct {
	// Address is the gRPC endpoint (host:port).
	Address string

	// Collection is the collection name.
	Collection string
}

// ChunkStore is a Qdrant-backed implementation of driven.ChunkStore.
type ChunkStore struct {
	conn        *grpc.ClientConn
	collections qdrantclient.CollectionsClient
	points      qdrantclient.PointsClient
	collection  string
}

// NewChunkStore connects to Qdrant at the configured address.
// The connection is plaintext; Qdrant runs alongside the CLI.
func NewChunkStore(cfg Config) (*ChunkStore, error) {
	if cfg.Address == "" {
		cfg.Address = "localhost:6334"
	}
	if cfg.Collection == "" {
		cfg.Collection = "recall_chunks"
	}

	conn, err := grpc.NewClient(cfg.Address, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("connect to qdrant at %s: %w", cfg.Address, err)
	}

	return &ChunkStore{
		conn:        conn,
		collections: qdrantclient.NewCollectionsClient(conn),
		points:      qdrantclient.NewPointsClient(conn),
		collection:  cfg.Collection,
	}, nil
}

// EnsureCollection creates the collection if it does not exist,
// configured for cosine distance at the given dimensions.
func (s *ChunkStore) EnsureCollection(ctx context.Context, dimensions int) error {
	if dimensions <= 0 {
		return fmt.Errorf("dimensions must be positive: %w", domain.ErrInvalidInput)
	}

	listResp, err := s.collections.List(ctx, &qdrantclient.ListCollectionsRequest{})
	if err != nil {
		return fmt.Errorf("list collections: %w", storeErr(err))
	}

	for _, collection := range listResp.Collections {
		if collection.Name == s.collection {
			return nil
		}
	}

	logger.Debug("creating qdrant collection %s (%d dimensions)", s.collection, dimensions)
	_, err = s.collections.Create(ctx, &qdrantclient.CreateCollection{
		CollectionName: s.collection,
		VectorsConfig: &qdrantclient.VectorsConfig{
			Config: &qdrantclient.VectorsConfig_Params{
				Params: &qdrantclient.VectorParams{
					Size:     uint64(dimensions),
					Distance: qdrantclient.Distance_Cosine,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("create collection %s: %w", s.collection, storeErr(err))
	}
	return nil
}

// InsertChunks upserts all chunks in a single waited call.
func (s *ChunkStore) InsertChunks(ctx context.Context, chunks []domain.Chunk) error {
	if len(chunks) == 0 {
		return nil
	}

	points := make([]*qdrantclient.PointStruct, 0, len(chunks))
	for _, chunk := range chunks {
		if chunk.OwnerID == "" {
			return fmt.Errorf("chunk %s has no owner: %w", chunk.ID, domain.ErrInvalidInput)
		}
		points = append(points, chunkToPoint(chunk))
	}

	wait := true
	_, err := s.points.Upsert(ctx, &qdrantclient.UpsertPoints{
		CollectionName: s.collection,
		Wait:           &wait,
		Points:         points,
	})
	if err != nil {
		return fmt.Errorf("upsert %d points: %w", len(points), storeErr(err))
	}
	return nil
}

// NearestNeighbors searches the collection with a mandatory owner filter.
// The filter is applied inside Qdrant; other owners' points are never
// candidates.
func (s *ChunkStore) NearestNeighbors(ctx context.Context, ownerID string, vector []float32, params driven.SearchParams) ([]driven.ChunkHit, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("owner id required: %w", domain.ErrInvalidInput)
	}

	req := &qdrantclient.SearchPoints{
		CollectionName: s.collection,
		Vector:         vector,
		Limit:          uint64(params.Limit),
		Filter:         ownerFilter(ownerID, ""),
		WithPayload: &qdrantclient.WithPayloadSelector{
			SelectorOptions: &qdrantclient.WithPayloadSelector_Include{
				Include: &qdrantclient.PayloadIncludeSelector{
					Fields: []string{fieldOwnerID, fieldDocumentID, fieldFilename, fieldContent, fieldPosition},
				},
			},
		},
	}
	if params.CandidatePool > 0 {
		ef := uint64(params.CandidatePool)
		req.Params = &qdrantclient.SearchParams{HnswEf: &ef}
	}
	if params.MinScore > 0 {
		threshold := params.MinScore
		req.ScoreThreshold = &threshold
	}

	resp, err := s.points.Search(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("search points: %w", storeErr(err))
	}

	hits := make([]driven.ChunkHit, 0, len(resp.Result))
	for _, point := range resp.Result {
		hits = append(hits, driven.ChunkHit{
			Chunk: pointToChunk(point.GetId(), point.GetPayload()),
			Score: point.GetScore(),
		})
	}
	return hits, nil
}

// ListFilenames scrolls the owner's points and collects distinct filenames.
func (s *ChunkStore) ListFilenames(ctx context.Context, ownerID string) ([]string, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("owner id required: %w", domain.ErrInvalidInput)
	}

	seen := make(map[string]bool)
	limit := uint32(scrollPageSize)
	var offset *qdrantclient.PointId

	for {
		resp, err := s.points.Scroll(ctx, &qdrantclient.ScrollPoints{
			CollectionName: s.collection,
			Filter:         ownerFilter(ownerID, ""),
			Limit:          &limit,
			Offset:         offset,
			WithPayload: &qdrantclient.WithPayloadSelector{
				SelectorOptions: &qdrantclient.WithPayloadSelector_Include{
					Include: &qdrantclient.PayloadIncludeSelector{
						Fields: []string{fieldFilename},
					},
				},
			},
		})
		if err != nil {
			return nil, fmt.Errorf("scroll points: %w", storeErr(err))
		}

		for _, point := range resp.Result {
			if name := point.GetPayload()[fieldFilename].GetStringValue(); name != "" {
				seen[name] = true
			}
		}

		offset = resp.GetNextPageOffset()
		if offset == nil {
			break
		}
	}

	filenames := make([]string, 0, len(seen))
	for name := range seen {
		filenames = append(filenames, name)
	}
	sort.Strings(filenames)
	return filenames, nil
}

// DeleteDocument removes the owner's points for a filename.
func (s *ChunkStore) DeleteDocument(ctx context.Context, ownerID, filename string) error {
	if ownerID == "" {
		return fmt.Errorf("owner id required: %w", domain.ErrInvalidInput)
	}

	filter := ownerFilter(ownerID, filename)

	exact := true
	countResp, err := s.points.Count(ctx, &qdrantclient.CountPoints{
		CollectionName: s.collection,
		Filter:         filter,
		Exact:          &exact,
	})
	if err != nil {
		return fmt.Errorf("count points: %w", storeErr(err))
	}
	if countResp.GetResult().GetCount() == 0 {
		return domain.ErrNotFound
	}

	wait := true
	_, err = s.points.Delete(ctx, &qdrantclient.DeletePoints{
		CollectionName: s.collection,
		Wait:           &wait,
		Points: &qdrantclient.PointsSelector{
			PointsSelectorOneOf: &qdrantclient.PointsSelector_Filter{
				Filter: filter,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("delete points: %w", storeErr(err))
	}
	return nil
}

// DeleteStaleChunks removes the owner's points for a filename except
// those belonging to keepDocumentID. Deleting nothing is fine; unlike
// DeleteDocument there is no existence check.
func (s *ChunkStore) DeleteStaleChunks(ctx context.Context, ownerID, filename, keepDocumentID string) error {
	if ownerID == "" {
		return fmt.Errorf("owner id required: %w", domain.ErrInvalidInput)
	}

	wait := true
	_, err := s.points.Delete(ctx, &qdrantclient.DeletePoints{
		CollectionName: s.collection,
		Wait:           &wait,
		Points: &qdrantclient.PointsSelector{
			PointsSelectorOneOf: &qdrantclient.PointsSelector_Filter{
				Filter: staleFilter(ownerID, filename, keepDocumentID),
			},
		},
	})
	if err != nil {
		return fmt.Errorf("delete stale points: %w", storeErr(err))
	}
	return nil
}

// Close releases the gRPC connection.
func (s *ChunkStore) Close() error {
	return s.conn.Close()
}

// ownerFilter builds the mandatory owner constraint, optionally
// narrowed to one filename.
func ownerFilter(ownerID, filename string) *qdrantclient.Filter {
	must := []*qdrantclient.Condition{
		keywordCondition(fieldOwnerID, ownerID),
	}
	if filename != "" {
		must = append(must, keywordCondition(fieldFilename, filename))
	}
	return &qdrantclient.Filter{Must: must}
}

// staleFilter matches the owner's points for a filename whose
// document_id differs from keepDocumentID.
func staleFilter(ownerID, filename, keepDocumentID string) *qdrantclient.Filter {
	filter := ownerFilter(ownerID, filename)
	filter.MustNot = []*qdrantclient.Condition{
		keywordCondition(fieldDocumentID, keepDocumentID),
	}
	return filter
}

func keywordCondition(key, value string) *qdrantclient.Condition {
	return &qdrantclient.Condition{
		ConditionOneOf: &qdrantclient.Condition_Field{
			Field: &qdrantclient.FieldCondition{
				Key: key,
				Match: &qdrantclient.Match{
					MatchValue: &qdrantclient.Match_Keyword{Keyword: value},
				},
			},
		},
	}
}

// chunkToPoint converts a chunk into a Qdrant point with its text and
// provenance in the payload.
func chunkToPoint(chunk domain.Chunk) *qdrantclient.PointStruct {
	return &qdrantclient.PointStruct{
		Id: &qdrantclient.PointId{
			PointIdOptions: &qdrantclient.PointId_Uuid{Uuid: chunk.ID},
		},
		Vectors: &qdrantclient.Vectors{
			VectorsOptions: &qdrantclient.Vectors_Vector{
				Vector: &qdrantclient.Vector{Data: chunk.Embedding},
			},
		},
		Payload: map[string]*qdrantclient.Value{
			fieldOwnerID:    {Kind: &qdrantclient.Value_StringValue{StringValue: chunk.OwnerID}},
			fieldDocumentID: {Kind: &qdrantclient.Value_StringValue{StringValue: chunk.DocumentID}},
			fieldFilename:   {Kind: &qdrantclient.Value_StringValue{StringValue: chunk.Filename}},
			fieldContent:    {Kind: &qdrantclient.Value_StringValue{StringValue: chunk.Content}},
			fieldPosition:   {Kind: &qdrantclient.Value_IntegerValue{IntegerValue: int64(chunk.Position)}},
		},
	}
}

// pointToChunk rebuilds a chunk from a point's payload. The embedding
// is not hydrated.
func pointToChunk(id *qdrantclient.PointId, payload map[string]*qdrantclient.Value) domain.Chunk {
	return domain.Chunk{
		ID:         id.GetUuid(),
		DocumentID: payload[fieldDocumentID].GetStringValue(),
		OwnerID:    payload[fieldOwnerID].GetStringValue(),
		Filename:   payload[fieldFilename].GetStringValue(),
		Content:    payload[fieldContent].GetStringValue(),
		Position:   int(payload[fieldPosition].GetIntegerValue()),
	}
}

// storeErr tags infrastructure failures with the domain sentinel so
// callers can classify them with errors.Is.
func storeErr(err error) error {
	return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
}
