package filestore

import (
	"time"

	"course-checkout/internal/domain/webhook"
)

func toFileRecord(r webhook.Record) fileRecord {
	fr := fileRecord{
		EventID:   r.EventID,
		Processed: r.Processed,
		CreatedAt: r.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
	if r.ProcessedAt != nil {
		s := r.ProcessedAt.UTC().Format(time.RFC3339Nano)
		fr.ProcessedAt = &s
	}
	return fr
}

func (fr fileRecord) toDomain() (webhook.Record, error) {
	createdAt, err := time.Parse(time.RFC3339Nano, fr.CreatedAt)
	if err != nil {
		return webhook.Record{}, err
	}
	rec := webhook.Record{
		EventID:   fr.EventID,
		Processed: fr.Processed,
		CreatedAt: createdAt,
	}
	if fr.ProcessedAt != nil {
		processedAt, err := time.Parse(time.RFC3339Nano, *fr.ProcessedAt)
		if err != nil {
			return webhook.Record{}, err
		}
		rec.ProcessedAt = &processedAt
	}
	return rec, nil
}
