package scheduling

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-FieldScheduler/internal/domain"
)

func TestAppendAudit_NewestFirst(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	var logs []domain.AuditEntry

	logs = AppendAudit(logs, NewAuditEntry("u", "first", "", now))
	logs = AppendAudit(logs, NewAuditEntry("u", "second", "", now))

	assert.Equal(t, "second", logs[0].Action)
	assert.Equal(t, "first", logs[1].Action)
	assert.NotEqual(t, logs[0].ID, logs[1].ID)
	assert.Equal(t, "2025-03-10T09:00:00Z", logs[0].Timestamp)
}

func TestAppendAudit_Cap(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	var logs []domain.AuditEntry
	for i := 0; i < domain.MaxAuditEntries+20; i++ {
		logs = AppendAudit(logs, NewAuditEntry("u", fmt.Sprintf("a%d", i), "", now))
	}

	assert.Len(t, logs, domain.MaxAuditEntries)
	assert.Equal(t, fmt.Sprintf("a%d", domain.MaxAuditEntries+19), logs[0].Action)
	assert.Equal(t, "a20", logs[len(logs)-1].Action)
}

func TestAppendAudit_DoesNotAliasInput(t *testing.T) {
	now := time.Now()
	orig := []domain.AuditEntry{NewAuditEntry("u", "old", "", now)}

	next := AppendAudit(orig, NewAuditEntry("u", "new", "", now))
	next[1].Action = "changed"

	assert.Equal(t, "old", orig[0].Action)
}
