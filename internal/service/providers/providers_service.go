// Package providers talks to the BPS WebAPI: period discovery and chunked data fetches.
package providers

import (
	"context"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"

	"github.com/ougirez/statdash/internal/config"
	"github.com/ougirez/statdash/internal/domain/dto"
	"github.com/ougirez/statdash/internal/pkg/httpclient"
	"github.com/ougirez/statdash/internal/pkg/logger"
	"github.com/ougirez/statdash/internal/pkg/metrics"
)

const (
	defaultChunkSize = 2
	defaultMaxPages  = 20
)

type Service struct {
	client    httpclient.Client
	baseURL   string
	domainID  string
	apiKey    string
	chunkSize int
	maxPages  int
	metrics   *metrics.SyncMetrics
}

func NewProvidersService(client httpclient.Client, cfg config.BPSConfig, m *metrics.SyncMetrics) *Service {
	chunkSize := cfg.ChunkSize
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}
	maxPages := cfg.MaxPages
	if maxPages <= 0 {
		maxPages = defaultMaxPages
	}

	return &Service{
		client:    client,
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		domainID:  cfg.DomainID,
		apiKey:    cfg.APIKey,
		chunkSize: chunkSize,
		maxPages:  maxPages,
		metrics:   m,
	}
}

// DomainID is the region every fetched row belongs to.
func (s *Service) DomainID() string {
	return s.domainID
}

// DiscoverPeriods returns the period ids available for indicatorID, page by page.
// The first page declares the page count; at most maxPages pages are read.
// Any unusable page ends discovery with what was gathered so far, which may be nothing.
func (s *Service) DiscoverPeriods(ctx context.Context, indicatorID string) []string {
	var (
		ids        []string
		totalPages = 1
	)

	for page := 1; page <= totalPages && page <= s.maxPages; page++ {
		info, items, err := s.fetchPeriodPage(ctx, indicatorID, page)
		if err != nil {
			logger.Warnf(ctx, "period discovery stopped, var-%s, page-%d: %s", indicatorID, page, s.redact(err))
			break
		}
		s.metrics.PageFetched()

		if page == 1 && info != nil {
			totalPages = info.Pages
		}
		for _, item := range items {
			if item.ID != "" {
				ids = append(ids, item.ID.String())
			}
		}
	}

	if totalPages > s.maxPages {
		logger.Warnf(ctx, "var-%s declares %d period pages, read only %d", indicatorID, totalPages, s.maxPages)
	}

	return ids
}

func (s *Service) fetchPeriodPage(ctx context.Context, indicatorID string, page int) (*dto.PageInfo, []dto.PeriodItem, error) {
	body, err := s.client.Get(ctx, s.periodsURL(indicatorID, page))
	if err != nil {
		return nil, nil, err
	}

	var resp dto.PeriodListResponse
	if err = sonic.Unmarshal(body, &resp); err != nil {
		return nil, nil, fmt.Errorf("sonic.Unmarshal: %w", err)
	}
	if !resp.Available() {
		return nil, nil, fmt.Errorf("status-%q, availability-%q", resp.Status, resp.DataAvailability)
	}

	var info *dto.PageInfo
	if len(resp.Data) > 0 {
		info = new(dto.PageInfo)
		if err = sonic.Unmarshal(resp.Data[0], info); err != nil {
			return nil, nil, fmt.Errorf("page info: %w", err)
		}
	}

	var items []dto.PeriodItem
	if len(resp.Data) > 1 {
		if err = sonic.Unmarshal(resp.Data[1], &items); err != nil {
			return nil, nil, fmt.Errorf("period items: %w", err)
		}
	}

	return info, items, nil
}

// FetchChunks requests periodIDs in batches of chunkSize, one request per batch, in order.
// Failed batches are logged and skipped; the result holds every batch that decoded.
func (s *Service) FetchChunks(ctx context.Context, indicatorID string, periodIDs []string) []*dto.DataResponse {
	responses := make([]*dto.DataResponse, 0, (len(periodIDs)+s.chunkSize-1)/s.chunkSize)

	for start := 0; start < len(periodIDs); start += s.chunkSize {
		chunk := periodIDs[start:min(start+s.chunkSize, len(periodIDs))]

		resp, err := s.fetchChunk(ctx, indicatorID, chunk)
		if err != nil {
			s.metrics.ChunkFailed()
			logger.Warnf(ctx, "chunk skipped, var-%s, th-%s: %s", indicatorID, strings.Join(chunk, ":"), s.redact(err))
			continue
		}
		responses = append(responses, resp)
	}

	return responses
}

func (s *Service) fetchChunk(ctx context.Context, indicatorID string, periodIDs []string) (*dto.DataResponse, error) {
	body, err := s.client.Get(ctx, s.dataURL(indicatorID, periodIDs))
	if err != nil {
		return nil, err
	}

	resp := new(dto.DataResponse)
	if err = sonic.Unmarshal(body, resp); err != nil {
		return nil, fmt.Errorf("sonic.Unmarshal: %w", err)
	}
	if !resp.Usable() {
		return nil, fmt.Errorf("status-%q, datacontent missing: %t", resp.Status, resp.Datacontent == nil)
	}

	return resp, nil
}

func (s *Service) periodsURL(indicatorID string, page int) string {
	return fmt.Sprintf("%s/list/model/th/domain/%s/var/%s/page/%d/key/%s/",
		s.baseURL, s.domainID, indicatorID, page, s.apiKey)
}

func (s *Service) dataURL(indicatorID string, periodIDs []string) string {
	return fmt.Sprintf("%s/list/model/data/domain/%s/var/%s/th/%s/key/%s/",
		s.baseURL, s.domainID, indicatorID, strings.Join(periodIDs, ":"), s.apiKey)
}

// redact keeps the api key out of logs; request errors carry the full URL.
func (s *Service) redact(err error) string {
	if s.apiKey == "" {
		return err.Error()
	}
	return strings.ReplaceAll(err.Error(), s.apiKey, "***")
}
