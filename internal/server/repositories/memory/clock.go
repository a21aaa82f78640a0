package memory

import "time"

// now is a seam for deterministic timestamps in tests.
var now = time.Now
