package services

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/nexai-hq/interview-gateway/internal/cache"
	"github.com/nexai-hq/interview-gateway/internal/models"
	"github.com/nexai-hq/interview-gateway/internal/utils"
)

// MetadataService resolves which provider assistant conducts the interview
// for a given resume, via the upstream interview API.
type MetadataService interface {
	AssistantForResume(ctx context.Context, resumeID string) (*models.AssistantProfile, error)
}

type metadataService struct {
	baseURL string
	http    *http.Client
	cache   cache.Cache
	ttl     time.Duration
}

func NewMetadataService(baseURL string, c cache.Cache, ttl time.Duration) MetadataService {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &metadataService{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
		cache:   c,
		ttl:     ttl,
	}
}

func (s *metadataService) AssistantForResume(ctx context.Context, resumeID string) (*models.AssistantProfile, error) {
	const op = "MetadataService.AssistantForResume"

	if resumeID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "resume_id is required", nil)
	}

	key := "resume:" + resumeID
	var cached models.AssistantProfile
	if s.cache != nil {
		if hit, err := s.cache.GetJSON(ctx, key, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/interview/resume/"+resumeID, nil)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to build upstream request", err)
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "upstream interview api unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, utils.E(utils.CodeNotFound, op, "resume not found", nil)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, utils.E(utils.CodeUnavailable, op, "upstream interview api error", nil)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to read upstream response", err)
	}

	var profile models.AssistantProfile
	if err := json.Unmarshal(body, &profile); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "invalid upstream response", err)
	}
	if profile.ResumeID == "" {
		profile.ResumeID = resumeID
	}

	if s.cache != nil {
		_ = s.cache.SetJSON(ctx, key, &profile, s.ttl)
	}
	return &profile, nil
}
