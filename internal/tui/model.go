// Package tui 以終端介面瀏覽食譜：列表頁可搜尋並勾選飲食標籤，選取後進入詳細頁。
package tui

import (
	"context"
	"fmt"
	"strings"

	"recipe-browser/internal/core/browse"
	"recipe-browser/internal/core/navigation"
	"recipe-browser/internal/core/recipe"
	"recipe-browser/internal/pkg/common"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	defaultWidth  = 80
	defaultHeight = 24

	// 列表頁頂部（標題、搜尋、標籤、筆數）與底部說明所佔行數
	listChromeLines = 7
	// 詳細頁標題與說明所佔行數
	detailChromeLines = 4
)

// Model 終端瀏覽器狀態
type Model struct {
	browse *browse.Service
	keys   KeyMap

	nav      *navigation.Controller
	criteria recipe.Criteria
	visible  []recipe.Recipe
	cursor   int

	search    textinput.Model
	searching bool
	detail    viewport.Model

	width  int
	height int
}

// New 建立列表頁狀態的模型
func New(svc *browse.Service) Model {
	search := textinput.New()
	search.Prompt = "search: "
	search.Placeholder = "type to filter by name"
	search.CharLimit = 100

	nav := navigation.NewController()
	nav.OnChange(func(from, to navigation.State) {
		common.LogNavigation("tui", from.View.String(), to.View.String(), to.Recipe.ID)
	})

	m := Model{
		browse: svc,
		keys:   DefaultKeyMap,
		nav:    nav,
		search: search,
		detail: viewport.New(defaultWidth, defaultHeight-detailChromeLines),
		width:  defaultWidth,
		height: defaultHeight,
	}
	m.refresh()
	return m
}

// Init 實作 tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update 實作 tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.search.Width = max(msg.Width-len(m.search.Prompt)-2, 10)
		m.detail.Width = msg.Width
		m.detail.Height = max(msg.Height-detailChromeLines, 1)
		if r, ok := m.nav.Selected(); ok {
			m.detail.SetContent(renderDetail(browse.NewDetailView(r), msg.Width))
		}
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m, tea.Quit
		}
		if m.searching {
			return m.updateSearch(msg)
		}
		if m.nav.View() == navigation.ViewDetail {
			return m.updateDetail(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.SearchDone) {
		m.searching = false
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != m.criteria.Search {
		m.criteria.Search = m.search.Value()
		m.refresh()
	}
	return m, cmd
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		return m, m.search.Focus()

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Select):
		if len(m.visible) == 0 {
			return m, nil
		}
		r := m.visible[m.cursor]
		m.nav.SelectRecipe(r)
		m.detail.SetContent(renderDetail(browse.NewDetailView(r), m.width))
		m.detail.GotoTop()

	default:
		for i, binding := range m.keys.Diet {
			if i < len(recipe.DietLabels) && key.Matches(msg, binding) {
				m.criteria = m.criteria.Toggle(recipe.DietLabels[i])
				m.refresh()
				break
			}
		}
	}
	return m, nil
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.nav.GoBack()
		return m, nil
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

// refresh 重新計算可見食譜並修正游標位置
func (m *Model) refresh() {
	m.visible = m.browse.Visible(context.Background(), m.criteria)
	if m.cursor >= len(m.visible) {
		m.cursor = max(len(m.visible)-1, 0)
	}
}

// View 實作 tea.Model
func (m Model) View() string {
	if r, ok := m.nav.Selected(); ok {
		return m.viewDetail(r)
	}
	return m.viewList()
}

func (m Model) viewList() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Recipe Browser"))
	b.WriteString("\n\n")
	b.WriteString(m.search.View())
	b.WriteString("\n")

	options := make([]string, len(recipe.DietLabels))
	for i, label := range recipe.DietLabels {
		box := "[ ]"
		if m.criteria.Checked(label) {
			box = checkedStyle.Render("[x]")
		}
		options[i] = fmt.Sprintf("%s %d %s", box, i+1, label)
	}
	b.WriteString(strings.Join(options, "  "))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("%d of %d recipes", len(m.visible), m.browse.Catalog().Len())))
	b.WriteString("\n\n")

	if len(m.visible) == 0 {
		b.WriteString(emptyStyle.Render(browse.EmptyMessage))
		b.WriteString("\n")
	} else {
		rows := max(m.height-listChromeLines, 1)
		start := 0
		if m.cursor >= rows {
			start = m.cursor - rows + 1
		}
		end := min(start+rows, len(m.visible))
		for i := start; i < end; i++ {
			b.WriteString(m.renderRow(i))
			b.WriteString("\n")
		}
	}

	help := m.keys.listHelp()
	if m.searching {
		help = m.keys.searchHelp()
	}
	b.WriteString(renderHelp(help))
	return b.String()
}

func (m Model) renderRow(i int) string {
	r := m.visible[i]
	line := r.Label
	if tags := r.DietTags(); len(tags) > 0 {
		line += " " + dimStyle.Render("("+strings.Join(tags, ", ")+")")
	}
	if i == m.cursor {
		return selectedStyle.Render("> ") + selectedStyle.Render(r.Label) + strings.TrimPrefix(line, r.Label)
	}
	return "  " + line
}

func (m Model) viewDetail(r recipe.Recipe) string {
	header := titleStyle.Render(r.Label)
	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		m.detail.View(),
		renderHelp(m.keys.detailHelp()),
	)
}

// renderDetail 詳細頁內文
func renderDetail(d browse.DetailView, width int) string {
	var b strings.Builder

	if d.MealLine != "" {
		b.WriteString(dimStyle.Render(d.MealLine))
		b.WriteString("\n\n")
	}
	fmt.Fprintf(&b, "Servings:     %s\n", d.Servings)
	fmt.Fprintf(&b, "Cooking time: %s\n", d.CookingTime)
	if len(d.DietTags) > 0 {
		fmt.Fprintf(&b, "Diet:         %s\n", strings.Join(d.DietTags, ", "))
	}

	b.WriteString("\n")
	b.WriteString(headingStyle.Render("Ingredients"))
	b.WriteString("\n")
	wrap := lipgloss.NewStyle().PaddingLeft(2).Width(max(width-2, 20))
	for _, line := range d.Recipe.IngredientLines {
		b.WriteString(wrap.Render("• " + line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(headingStyle.Render("Nutrition"))
	b.WriteString("\n")
	for _, row := range d.Nutrients {
		fmt.Fprintf(&b, "  %-12s %s\n", row.Name, row.Value)
	}
	return b.String()
}

func renderHelp(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		h := binding.Help()
		if h.Key == "" {
			continue
		}
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return helpStyle.Render(strings.Join(parts, " • "))
}
