package themes

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Veraticus/leasetx/internal/format"
	"github.com/Veraticus/leasetx/internal/model"
)

func TestGetTheme(t *testing.T) {
	assert.Equal(t, CatppuccinMocha.Palette.Primary, GetTheme("catppuccin-mocha").Palette.Primary)
	assert.Equal(t, Default.Palette.Primary, GetTheme("default").Palette.Primary)
	assert.Equal(t, Default.Palette.Primary, GetTheme("unknown").Palette.Primary)
}

func TestTheme_Property(t *testing.T) {
	for _, p := range model.PropertyTypes {
		assert.Contains(t, Default.Property(p), "["+string(p)+"]")
		assert.Contains(t, Default.Palette.Properties, p)
	}
	assert.Contains(t, Default.Property("기타"), "[기타]")
}

func TestTheme_Risk(t *testing.T) {
	assert.Contains(t, Default.Risk(format.RiskOver), "초과")
	assert.Contains(t, Default.Risk(format.RiskSafe), "안전")
	assert.Contains(t, Default.Risk(format.RiskUnknown), "-")
}
