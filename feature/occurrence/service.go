package occurrence

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"vmp-sync/core/config"
	"vmp-sync/core/images"
	"vmp-sync/core/solr"
	"vmp-sync/core/storage"
	"vmp-sync/core/utils"
	"vmp-sync/core/vmp"
	"vmp-sync/feature/occurrence/mapper"
	"vmp-sync/feature/occurrence/models"
	"vmp-sync/feature/occurrence/reconcile"

	"go.uber.org/zap"
)

// Service runs the occurrence sync passes: caching (source index → ledger),
// dispatch (ledger → platform) and unlisting. All collaborators are injected
// at construction; nothing here reaches for process-global state.
type Service struct {
	cfg     config.SyncConfig
	index   *solr.Client
	vmp     *vmp.Client
	ledger  *Ledger
	mapper  *mapper.Mapper
	fetcher images.Fetcher
	archive storage.Archiver
	logger  *zap.Logger

	// now is swapped out in tests for deterministic validity windows.
	now func() time.Time
}

// NewService wires the occurrence service.
func NewService(cfg config.SyncConfig, index *solr.Client, platform *vmp.Client,
	ledger *Ledger, m *mapper.Mapper, fetcher images.Fetcher,
	archive storage.Archiver, logger *zap.Logger) *Service {
	return &Service{
		cfg:     cfg,
		index:   index,
		vmp:     platform,
		ledger:  ledger,
		mapper:  m,
		fetcher: fetcher,
		archive: archive,
		logger:  logger,
		now:     time.Now,
	}
}

// localePair holds the up-to-two language variants of one occurrence.
type localePair struct {
	en *solr.Document
	zh *solr.Document
}

func (p *localePair) primary() *solr.Document {
	if p.en != nil {
		return p.en
	}
	return p.zh
}

// CacheOccurrences runs one full reconciliation pass: it computes the
// valid-ID set, fetches the matching documents, classifies every id in the
// union of that set and the ledger, and persists the resulting transitions.
//
// The pass is synchronous and stateless between runs. Every comparison is
// against the ledger's current truth, so a pass interrupted halfway leaves
// the ledger consistent but stale and the next pass repairs it.
func (s *Service) CacheOccurrences(ctx context.Context) (string, error) {
	now := s.now()

	validIDs, err := s.index.ValidOccurrenceIDs(ctx, now)
	if err != nil {
		return "", fmt.Errorf("failed to load valid occurrence ids: %w", err)
	}

	// Ids already staged as added are re-fetched even when the index no
	// longer lists them, so that an add-in-flight that drops out of the
	// window is observed and deleted rather than silently forgotten.
	addedIDs, err := s.ledger.IDsWithStatus(ctx, models.StatusURLAdded)
	if err != nil {
		return "", err
	}
	fetchIDs := utils.MergeIDs(validIDs, addedIDs)

	snapshot, err := s.ledger.Snapshot(ctx)
	if err != nil {
		return "", err
	}

	pairs, err := s.fetchPairs(ctx, fetchIDs)
	if err != nil {
		return "", err
	}

	var ledgerIDs []string
	for id := range snapshot {
		ledgerIDs = append(ledgerIDs, id)
	}
	universe := utils.MergeIDs(fetchIDs, ledgerIDs)

	var added, updated, deleted, unchanged, failed int
	for _, id := range universe {
		row, exists := snapshot[id]
		state := reconcile.LedgerState{Exists: exists, Status: row.Status, JSON: row.JSON}

		pair := pairs[id]
		inSource := pair != nil

		var expired bool
		var canonicalJSON string
		if pair != nil {
			expired = s.pairExpired(pair, now)
			if !expired && state.Status != models.StatusURLDeleted {
				rec, mapErr := s.mapper.Map(pair.en, pair.zh)
				if mapErr != nil {
					// A record we cannot map is left untouched this pass;
					// its batch mates proceed.
					s.logger.Error("failed to map occurrence",
						zap.String("occurrenceId", id), zap.Error(mapErr))
					failed++
					continue
				}
				encoded, encErr := json.Marshal(rec)
				if encErr != nil {
					s.logger.Error("failed to encode occurrence",
						zap.String("occurrenceId", id), zap.Error(encErr))
					failed++
					continue
				}
				canonicalJSON = string(encoded)
			}
		}

		switch reconcile.Classify(inSource, expired, state, canonicalJSON) {
		case reconcile.TransitionAdd:
			if err := s.ledger.Create(ctx, id, canonicalJSON); err != nil {
				return "", err
			}
			added++
		case reconcile.TransitionUpdate:
			if err := s.ledger.StageUpdate(ctx, id, canonicalJSON); err != nil {
				return "", err
			}
			updated++
		case reconcile.TransitionDelete:
			if err := s.ledger.MarkDeleted(ctx, id); err != nil {
				return "", err
			}
			deleted++
		default:
			unchanged++
		}
	}

	summary := fmt.Sprintf("Cached %d occurrence(s): %d added, %d updated, %d deleted, %d unchanged",
		len(universe), added, updated, deleted, unchanged)
	if failed > 0 {
		summary += fmt.Sprintf(", %d failed to map", failed)
	}
	s.logger.Info("occurrence cache pass finished",
		zap.Int("added", added),
		zap.Int("updated", updated),
		zap.Int("deleted", deleted),
		zap.Int("unchanged", unchanged),
		zap.Int("failed", failed))
	return summary, nil
}

// fetchPairs loads the documents for the given ids in index-safe chunks and
// groups them into per-occurrence locale pairs.
func (s *Service) fetchPairs(ctx context.Context, ids []string) (map[string]*localePair, error) {
	pairs := make(map[string]*localePair, len(ids))
	for _, chunk := range utils.Chunk(ids, s.cfg.FetchBatchSize) {
		docs, err := s.index.FetchOccurrences(ctx, chunk)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch occurrence details: %w", err)
		}
		for i := range docs {
			doc := &docs[i]
			pair := pairs[doc.OccurrenceID]
			if pair == nil {
				pair = &localePair{}
				pairs[doc.OccurrenceID] = pair
			}
			switch doc.Language {
			case solr.LanguageChinese:
				pair.zh = doc
			default:
				pair.en = doc
			}
		}
	}
	return pairs, nil
}

// pairExpired reports whether the occurrence's source-reported expiry
// instant has passed. Expiry always wins over list membership: the index
// keeps expired records listed until its own cleanup runs.
func (s *Service) pairExpired(pair *localePair, now time.Time) bool {
	expires := pair.primary().Expires
	if expires == "" {
		return false
	}
	t, err := utils.ParseSourceTime(expires)
	if err != nil {
		s.logger.Warn("unparseable expiry instant, treating as live",
			zap.String("occurrenceId", pair.primary().OccurrenceID),
			zap.String("expires", expires))
		return false
	}
	return t.Before(now)
}

// Unlist flips the given occurrences to unlisted visibility on the platform
// and records the outcome per id.
func (s *Service) Unlist(ctx context.Context, ids []string) (string, error) {
	if len(ids) == 0 {
		return "Unlisted 0 occurrence(s)", nil
	}

	token, err := s.vmp.Login(ctx)
	if err != nil {
		return "", err
	}

	var unlisted int
	for _, id := range ids {
		result, err := s.vmp.Unlist(ctx, token, id)
		if err != nil {
			s.logger.Error("unlist call failed",
				zap.String("occurrenceId", id), zap.Error(err))
			continue
		}
		if result.Error.Total > 0 {
			message := result.Error.Data[0].Message
			s.logger.Warn("platform rejected unlist",
				zap.String("occurrenceId", id), zap.String("message", message))
			if err := s.ledger.MarkErrored(ctx, id, message); err != nil {
				return "", err
			}
			continue
		}
		if err := s.ledger.MarkUnlisted(ctx, []string{id}); err != nil {
			return "", err
		}
		unlisted++
	}

	return fmt.Sprintf("Unlisted %d of %d occurrence(s)", unlisted, len(ids)), nil
}
