package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/laosia/navi/internal/model"
)

func TestByName(t *testing.T) {
	assert.Equal(t, "tokyo-night", ByName("tokyo-night").Name)
	assert.Equal(t, FlexokiDark.Name, ByName("no-such-theme").Name)
}

func TestSetActive(t *testing.T) {
	t.Cleanup(func() { Active = FlexokiDark })

	SetActive("catppuccin-mocha")
	assert.Equal(t, CatppuccinMocha.Name, Active.Name)
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"flexoki-dark", "catppuccin-mocha", "tokyo-night", "terminal"}, Names())
}

func TestForRole(t *testing.T) {
	th := FlexokiDark
	assert.Equal(t, th.Blue, th.ForRole(model.RoleBlue))
	assert.Equal(t, th.Orange, th.ForRole(model.RoleOrange))
	assert.Equal(t, th.TextMuted, th.ForRole(model.RoleGray))
	assert.Equal(t, th.Green, th.ForRole(model.CategoryCOGS.Role()))
}
