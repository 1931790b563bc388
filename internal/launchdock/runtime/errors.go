package runtime

import "errors"

// ErrContainerGone is returned when the container an action targets no
// longer exists in the runtime.
var ErrContainerGone = errors.New("container no longer exists")
