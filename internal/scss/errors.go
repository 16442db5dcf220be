package scss

import "fmt"

// UnknownAssetError is returned when a name is not in the registry
type UnknownAssetError struct {
	Name string
}

func (e *UnknownAssetError) Error() string {
	return fmt.Sprintf("unknown SCSS asset %q", e.Name)
}
