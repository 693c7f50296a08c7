package browser

import "fmt"

type By string

const (
	ByCSS   By = "css"
	ByXPath By = "xpath"
)

// Locator is a pure (kind, value) selection rule for one DOM element.
type Locator struct {
	By    By
	Value string
}

func CSS(value string) Locator {
	return Locator{By: ByCSS, Value: value}
}

func XPath(value string) Locator {
	return Locator{By: ByXPath, Value: value}
}

func (l Locator) String() string {
	return fmt.Sprintf("%s:%s", l.By, l.Value)
}
