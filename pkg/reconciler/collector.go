package reconciler

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/contactmerge/pkg/audit"
	"github.com/agentstation/contactmerge/pkg/contacts"
)

// collector routes merge events of one pass to the audit log, the pass
// statistics and the debug log.
type collector struct {
	pass   PassType
	stats  *PassStatistics
	audit  *audit.Log
	logger *zerolog.Logger
}

// newCollector creates a collector for one pass.
func newCollector(pass PassType, stats *PassStatistics, log *audit.Log, logger *zerolog.Logger) *collector {
	return &collector{
		pass:   pass,
		stats:  stats,
		audit:  log,
		logger: logger,
	}
}

// Merged implements Recorder.
func (c *collector) Merged(rule string, incoming, result contacts.Contact) {
	c.stats.count(rule)
	if c.audit != nil {
		c.audit.Merge(c.pass.String(), rule, incoming, result)
	}
	c.logger.Debug().
		Str("rule", rule).
		Str("name", result.Name()).
		Str("email", result.Email()).
		Int("count", result.MergeCount()).
		Msg("Records merged")
}
