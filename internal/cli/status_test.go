package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agiantii/bcoj/internal/judge"
)

func TestStatusBadgeCarriesVerdictText(t *testing.T) {
	statuses := []judge.Status{
		judge.StatusPending,
		judge.StatusJudging,
		judge.StatusAccepted,
		judge.StatusCompileFail,
		judge.StatusWrongAnswer,
		judge.StatusInternalError,
	}
	for _, status := range statuses {
		badge := StatusBadge(status)
		assert.True(t, strings.Contains(badge, string(status)), "badge %q lost the verdict text", badge)
	}
}
