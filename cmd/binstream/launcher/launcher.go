package launcher

import (
	"gopkg.in/urfave/cli.v1"

	"github.com/rony4d/go-binstream/flags"
)

func newApp() *cli.App {
	app := flags.NewApp("Decode records out of chunked binary streams")
	app.Flags = append(app.Flags, flags.CommonFlags()...)
	app.Flags = append(app.Flags, flags.InputFlags()...)
	app.Flags = append(app.Flags, flags.OutputFlags()...)
	app.Commands = []cli.Command{
		splitCommand,
		intsCommand,
		bitsCommand,
		framesCommand,
	}
	return app
}

// Launch parses args and runs the selected command.
func Launch(args []string) error {
	return newApp().Run(args)
}
