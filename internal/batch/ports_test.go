package batch

import (
	"github.com/concave-dev/attest/internal/backend"
	"github.com/concave-dev/attest/internal/directory"
	"github.com/concave-dev/attest/internal/mailer"
	"github.com/concave-dev/attest/internal/notify"
)

var (
	_ Backend      = (*backend.Client)(nil)
	_ EditLoader   = (*backend.Client)(nil)
	_ MemberSource = (*directory.Client)(nil)
	_ Mailer       = (*mailer.Client)(nil)
	_ Composer     = (*notify.Composer)(nil)
)
