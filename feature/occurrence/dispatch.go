package occurrence

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"vmp-sync/core/images"
	"vmp-sync/core/utils"
	"vmp-sync/feature/occurrence/mapper"
	"vmp-sync/feature/occurrence/models"

	"go.uber.org/zap"
)

// stagedRecord pairs a pending ledger row's id with its dispatch-ready
// payload. Order follows the ledger's pending order throughout.
type stagedRecord struct {
	id      string
	payload json.RawMessage
}

// DispatchOccurrences sends every pending ledger row to the platform in
// order-preserving batches and applies the partitioned per-record outcome:
// accepted rows become SENT, rejected rows become ERRORED with the
// platform's message, and rows in a batch that never got through stay
// pending for the next pass.
//
// A token failure aborts the whole pass; there is no point draining batches
// that can only fail the same way.
func (s *Service) DispatchOccurrences(ctx context.Context) (string, error) {
	rows, err := s.ledger.Pending(ctx)
	if err != nil {
		return "", err
	}
	if len(rows) == 0 {
		return "Sent 0 record(s) in 0 batch(es) to the VMP", nil
	}

	// One cache per pass: the same thumbnail is encoded once no matter how
	// many records share it, and nothing is retained across passes.
	cache := images.NewCache(s.fetcher, s.cfg.DefaultImageURL, s.logger)

	staged := make([]stagedRecord, 0, len(rows))
	for _, row := range rows {
		var rec models.CanonicalRecord
		if err := json.Unmarshal([]byte(row.JSON), &rec); err != nil {
			s.logger.Error("staged record is not decodable",
				zap.String("occurrenceId", row.OccurrenceID), zap.Error(err))
			if err := s.ledger.MarkErrored(ctx, row.OccurrenceID, "staged record is not decodable"); err != nil {
				return "", err
			}
			continue
		}

		// The ledger keeps the URL form; the payload carries the bytes.
		if err := mapper.InlineImages(ctx, &rec, cache); err != nil {
			s.logger.Error("failed to inline images",
				zap.String("occurrenceId", row.OccurrenceID), zap.Error(err))
			if err := s.ledger.MarkErrored(ctx, row.OccurrenceID, "failed to inline images"); err != nil {
				return "", err
			}
			continue
		}

		payload, err := json.Marshal(&rec)
		if err != nil {
			return "", fmt.Errorf("failed to encode occurrence %s: %w", row.OccurrenceID, err)
		}
		staged = append(staged, stagedRecord{id: row.OccurrenceID, payload: payload})
	}

	token, err := s.vmp.Login(ctx)
	if err != nil {
		return "", err
	}

	batches := utils.Chunk(staged, s.cfg.OccurrenceBatchSize)
	passStamp := s.now().UTC().Format("20060102T150405")

	var sent, errored int
	for n, batch := range batches {
		payloads := make([]json.RawMessage, len(batch))
		ids := make(map[string]struct{}, len(batch))
		for i, record := range batch {
			payloads[i] = record.payload
			ids[record.id] = struct{}{}
		}

		s.archiveBatch(ctx, fmt.Sprintf("dispatch/occurrences/%s-%d.json", passStamp, n), payloads)

		result, err := s.vmp.UpsertOccurrences(ctx, token, payloads)
		if err != nil {
			// Transport failure after retries: the batch stays pending and
			// the pass moves on. The next pass picks these rows up again.
			s.logger.Error("occurrence batch failed",
				zap.Int("batch", n), zap.Int("size", len(batch)), zap.Error(err))
			continue
		}

		for _, itemErr := range result.Error.Data {
			if _, ok := ids[itemErr.ID]; !ok {
				s.logger.Warn("platform rejected an id outside the batch",
					zap.String("occurrenceId", itemErr.ID))
				continue
			}
			if err := s.ledger.MarkErrored(ctx, itemErr.ID, itemErr.Message); err != nil {
				return "", err
			}
			errored++
		}
		if err := s.ledger.MarkSent(ctx, result.Success.IDs); err != nil {
			return "", err
		}
		sent += len(result.Success.IDs)
	}

	summary := fmt.Sprintf("Sent %d record(s) in %d batch(es) to the VMP", sent, len(batches))
	if errored > 0 {
		summary += fmt.Sprintf(", %d rejected", errored)
	}
	s.logger.Info("occurrence dispatch pass finished",
		zap.Int("pending", len(rows)),
		zap.Int("sent", sent),
		zap.Int("rejected", errored),
		zap.Int("batches", len(batches)))
	return summary, nil
}

// archiveBatch stores the outbound batch body for audit. Archiving is best
// effort: a storage failure never blocks dispatch.
func (s *Service) archiveBatch(ctx context.Context, name string, payloads []json.RawMessage) {
	body, err := json.Marshal(payloads)
	if err != nil {
		s.logger.Warn("failed to encode batch for archiving", zap.Error(err))
		return
	}

	archiveCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := s.archive.Archive(archiveCtx, name, body); err != nil {
		s.logger.Warn("failed to archive batch", zap.String("name", name), zap.Error(err))
	}
}
