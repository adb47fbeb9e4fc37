package render

import "github.com/spachava753/lint-recently/internal/models"

// PrintTaskOutput writes every collected output entry through logger, using
// Error when the run recorded any failure and Log otherwise.
func PrintTaskOutput(rc *models.RunContext, logger models.Logger) {
	if rc == nil {
		return
	}
	log := logger.Log
	if rc.HasErrors() {
		log = logger.Error
	}
	for _, line := range rc.Output() {
		log(line)
	}
}
