// Package navigation 管理列表頁與詳細頁之間的切換狀態。
package navigation

import "recipe-browser/internal/core/recipe"

// View 目前顯示的頁面
type View int

const (
	// ViewList 食譜列表（初始狀態）
	ViewList View = iota
	// ViewDetail 單一食譜的詳細頁
	ViewDetail
)

func (v View) String() string {
	switch v {
	case ViewList:
		return "list"
	case ViewDetail:
		return "detail"
	default:
		return "unknown"
	}
}

// State 導覽狀態。只有兩種可能：
// {View: ViewList} 或 {View: ViewDetail, Recipe: r}。
type State struct {
	View   View
	Recipe recipe.Recipe
}

// ListState 列表狀態
func ListState() State {
	return State{View: ViewList}
}

// DetailState 詳細頁狀態
func DetailState(r recipe.Recipe) State {
	return State{View: ViewDetail, Recipe: r}
}

// Selected 取得已選取的食譜
func (s State) Selected() (recipe.Recipe, bool) {
	if s.View != ViewDetail {
		return recipe.Recipe{}, false
	}
	return s.Recipe, true
}

// Listener 狀態切換後呼叫
type Listener func(from, to State)

// Controller 導覽控制器，非併發安全；由呼叫端序列化事件。
type Controller struct {
	state    State
	listener Listener
}

// NewController 建立從列表頁開始的控制器
func NewController() *Controller {
	return &Controller{state: ListState()}
}

// OnChange 設定狀態切換監聽器
func (c *Controller) OnChange(l Listener) {
	c.listener = l
}

// State 目前狀態
func (c *Controller) State() State {
	return c.state
}

// View 目前頁面
func (c *Controller) View() View {
	return c.state.View
}

// Selected 目前選取的食譜
func (c *Controller) Selected() (recipe.Recipe, bool) {
	return c.state.Selected()
}

// SelectRecipe 選取食譜並切換到詳細頁
func (c *Controller) SelectRecipe(r recipe.Recipe) {
	c.transition(DetailState(r))
}

// GoBack 清除選取並回到列表頁
func (c *Controller) GoBack() {
	c.transition(ListState())
}

func (c *Controller) transition(next State) {
	prev := c.state
	c.state = next
	if c.listener != nil {
		c.listener(prev, next)
	}
}
