package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cocosip/go-huffman-codec/huffman"
	"github.com/cocosip/go-huffman-codec/internal/model"
	"github.com/cocosip/go-huffman-codec/internal/repo"
	"github.com/cocosip/go-huffman-codec/pkg/logger"
)

type TableService struct {
	repo   repo.TableRepo
	logger logger.Logger
	now    func() time.Time
}

func NewTableService(r repo.TableRepo, l logger.Logger) *TableService {
	return &TableService{repo: r, logger: l, now: time.Now}
}

// Created is a freshly built table together with how well it fits its alphabet
type Created struct {
	Table *model.Table
	Stats huffman.Stats
}

// CreateFromAlphabet builds and stores a code table for the given weights
func (s *TableService) CreateFromAlphabet(ctx context.Context, alphabet []huffman.WeightedSymbol) (*Created, error) {
	tree, err := huffman.BuildTree(alphabet)
	if err != nil {
		return nil, err
	}
	codes := huffman.GenerateCodes(tree)
	stats, err := huffman.Analyze(alphabet, codes)
	if err != nil {
		return nil, err
	}

	t := &model.Table{
		ID:        uuid.NewString(),
		Codes:     codes,
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.Save(ctx, t); err != nil {
		s.logger.Errorf("save table %s: %v", t.ID, err)
		return nil, err
	}
	s.logger.Infof("table created: %s (%d symbols, %.3f bits/symbol)", t.ID, stats.Symbols, stats.AverageLength)
	return &Created{Table: t, Stats: stats}, nil
}

// CreateFromText tallies symbol frequencies in text and builds a table from them
func (s *TableService) CreateFromText(ctx context.Context, text string) (*Created, error) {
	return s.CreateFromAlphabet(ctx, huffman.CountFrequencies(text))
}

func (s *TableService) GetByID(ctx context.Context, id string) (*model.Table, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *TableService) List(ctx context.Context) ([]*model.Table, error) {
	return s.repo.List(ctx)
}

// Encode encodes text with the stored table id
func (s *TableService) Encode(ctx context.Context, id, text string) (huffman.Stream, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return huffman.Stream{}, err
	}
	stream, err := huffman.EncodeString(text, t.Codes)
	if err != nil {
		return huffman.Stream{}, fmt.Errorf("table %s: %w", id, err)
	}
	return stream, nil
}

// Decode rebuilds the tree of the stored table id and decodes stream with it
func (s *TableService) Decode(ctx context.Context, id string, stream huffman.Stream) (string, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	tree, err := huffman.TreeFromCodes(t.Codes)
	if err != nil {
		s.logger.Errorf("rebuild tree of table %s: %v", id, err)
		return "", fmt.Errorf("table %s: %w", id, err)
	}
	symbols, err := huffman.DecodeStream(stream, tree)
	if err != nil {
		return "", fmt.Errorf("table %s: %w", id, err)
	}
	return string(symbols), nil
}
