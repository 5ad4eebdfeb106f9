package grab

import "fmt"

// DefaultStyle returns affordance stylesheet for tables marked with attribute
// marker: dimmed popup backdrop, dashed outline and grab cursor.
func DefaultStyle(marker string) string {
	sel := fmt.Sprintf("[%s]", marker)
	return fmt.Sprintf(`
::backdrop {
  background-color: rgba(0, 0, 0, 0.5);
}
%[1]s {
  outline: 5px dashed orange !important;
}
%[1]s:hover {
  cursor: grab !important;
}`, sel)
}
