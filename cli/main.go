package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/BertoldVdb/devtrial/hexdump"
	"github.com/BertoldVdb/devtrial/registry"
	"github.com/BertoldVdb/devtrial/sense"
	"github.com/BertoldVdb/devtrial/trial"
	"github.com/alecthomas/kong"
)

type Context struct {
	catalog   *registry.Catalog
	transport trial.Transport
	closer    io.Closer
	logFunc   trial.LogFunc
}

var CLI struct {
	Transport string `optional help:"Command transport: hid, serial or sim." default:"hid"`

	VID        int    `optional type:"hex" help:"The USB Vendor ID." default:"534d"`
	PID        int    `optional type:"hex" help:"The USB Product ID."`
	Serial     string `optional help:"The USB Serial."`
	RawPath    string `optional help:"The USB Device Path."`
	ReportID   int    `optional type:"int" help:"HID feature report ID."`
	ReportSize int    `optional help:"HID feature report length including the ID." default:"64"`

	Port string `optional help:"Serial port used by the serial transport."`
	Baud int    `optional help:"Serial data rate in bits per second." default:"115200"`

	Timeout      time.Duration `optional help:"Device session timeout for each command." default:"10s"`
	Catalog      string        `optional help:"YAML command catalog, the built-in one when omitted."`
	BytesPerLine int           `optional help:"Bytes per hex dump line." default:"16"`
	NoColor      bool          `optional help:"Disable colored output."`
	NoClear      bool          `optional help:"Do not clear the screen between menus."`

	LogLevel int    `optional help:"Higher values give more output."`
	LogFile  string `optional help:"Write log output to this file instead of stderr."`

	Menu         MenuCmd         `cmd help:"Browse the catalog and run commands interactively."`
	Exec         ExecCmd         `cmd help:"Run one command and print its result."`
	ListCommands ListCommandsCmd `cmd help:"List the commands of the catalog."`
	ListDev      ListHIDCmd      `cmd help:"List devices."`
}

func needsTransport(command string) bool {
	return strings.HasPrefix(command, "menu") || strings.HasPrefix(command, "exec")
}

func main() {
	k, err := kong.New(&CLI,
		kong.NamedMapper("int", intMapper{}),
		kong.NamedMapper("hex", intMapper{base: 16}))
	if err != nil {
		fmt.Println(err)
		return
	}

	ctx, err := k.Parse(os.Args[1:])
	if err != nil {
		fmt.Println(err)
		return
	}

	var logOut io.Writer = os.Stderr
	if CLI.LogFile != "" {
		f, err := os.Create(CLI.LogFile)
		if err != nil {
			fmt.Println("Failed to create log file", err)
			return
		}
		defer f.Close()
		logOut = f
	}

	c := &Context{
		logFunc: func(level int, format string, param ...interface{}) {
			if level > CLI.LogLevel {
				return
			}
			str := fmt.Sprintf(format, param...)
			fmt.Fprintf(logOut, "TRIAL(%d): %s\n", level, str)
		},
	}

	if CLI.Catalog != "" {
		c.catalog, err = registry.LoadFile(CLI.Catalog)
	} else {
		c.catalog, err = registry.Default()
	}
	if err != nil {
		fmt.Println("Failed to load catalog", err)
		return
	}
	c.logFunc(1, "Catalog %q has %d commands", c.catalog.Root.Title, len(c.catalog.Commands()))

	hidInit()
	defer hidExit()

	if needsTransport(ctx.Command()) {
		if err := c.openTransport(); err != nil {
			fmt.Println("Failed to open transport", err)
			return
		}
		if c.closer != nil {
			defer c.closer.Close()
		}
	}

	err = ctx.Run(c)
	ctx.FatalIfErrorf(err)
}

func (c *Context) invoker() *trial.Invoker {
	return &trial.Invoker{
		Transport: c.transport,
		Timeout:   CLI.Timeout,
		LogFunc:   c.logFunc,
	}
}

func (c *Context) session(console *trial.Console) *trial.Session {
	return &trial.Session{
		Console:      console,
		Invoker:      c.invoker(),
		Decoder:      sense.Decoder{},
		Renderer:     hexdump.New(CLI.NoColor),
		BytesPerLine: CLI.BytesPerLine,
		LogFunc:      c.logFunc,
	}
}
