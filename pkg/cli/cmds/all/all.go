// Package all registers all shell commands.
package all

import (
	_ "github.com/robotalks/up2stream/pkg/cli/cmds/audio"
	_ "github.com/robotalks/up2stream/pkg/cli/cmds/playback"
	_ "github.com/robotalks/up2stream/pkg/cli/cmds/raw"
	_ "github.com/robotalks/up2stream/pkg/cli/cmds/system"
)
