// Render an html file in a headless browser and capture an element of it.
//
//	htmlshot -selector '#card' -format png -scale 2 -out card.png card.html
//
// The html is read from stdin when no file is given.
package main

import (
	"flag"
	"fmt"
	"io/ioutil"
	"os"
	"strings"

	"github.com/go-rod/htmlshot"
	"github.com/go-rod/htmlshot/lib/cleanup"
	"github.com/go-rod/htmlshot/lib/devices"
	"github.com/go-rod/htmlshot/lib/utils"
	"go.uber.org/zap"
)

var (
	selector       = flag.String("selector", "body", "the css selector of the element to capture")
	out            = flag.String("out", "", "the output file, default is stdout")
	format         = flag.String("format", "jpeg", "jpeg, png or webp")
	quality        = flag.Int("quality", 0, "the quality of jpeg and webp, 0 means the default")
	width          = flag.Int("width", 800, "the viewport width")
	height         = flag.Int("height", 600, "the viewport height")
	scale          = flag.Float64("scale", 1, "the device scale factor")
	device         = flag.String("device", "", "a device preset, one of: "+strings.Join(devices.Names(), ", "))
	landscape      = flag.Bool("landscape", false, "use the landscape orientation of the device")
	fullPage       = flag.Bool("full-page", false, "capture beyond the viewport")
	omitBackground = flag.Bool("omit-background", false, "make the default background transparent, png and webp only")
	connect        = flag.String("connect", "", "connect to a running browser instead of launching one, such as 9222")
	verbose        = flag.Bool("verbose", false, "print the lifecycle log to stderr")
)

func main() {
	defer cleanup.Guard()

	flag.Parse()

	if *verbose {
		logger, err := zap.NewDevelopment()
		utils.E(err)
		defer func() { _ = logger.Sync() }()
		zap.ReplaceGlobals(logger)
	}

	html, err := readHTML(flag.Arg(0))
	utils.E(err)

	opts, err := captureOptions()
	utils.E(err)

	var b *htmlshot.Browser
	if *connect == "" {
		b = htmlshot.MustLaunch(nil)
	} else {
		b = htmlshot.MustConnect(*connect)
	}
	defer b.MustClose()

	img, err := b.CaptureHTMLWithOptions(html, *selector, opts)
	utils.E(err)

	if *out == "" {
		_, err = os.Stdout.Write(img)
		utils.E(err)
		return
	}

	utils.E(ioutil.WriteFile(*out, img, 0644))
	zap.L().Info("saved", zap.String("file", *out), zap.Int("bytes", len(img)))
}

func readHTML(file string) (string, error) {
	if file == "" || file == "-" {
		data, err := ioutil.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := ioutil.ReadFile(file)
	return string(data), err
}

func captureOptions() (htmlshot.CaptureOptions, error) {
	opts := htmlshot.NewCaptureOptions().
		WithQuality(*quality).
		WithFullPage(*fullPage).
		WithOmitBackground(*omitBackground)

	switch *format {
	case "jpeg", "jpg":
		opts = opts.WithFormat(htmlshot.JPEG)
	case "png":
		opts = opts.WithFormat(htmlshot.PNG)
	case "webp":
		opts = opts.WithFormat(htmlshot.WebP)
	default:
		return opts, fmt.Errorf("unknown format: %s", *format)
	}

	if *device != "" {
		v, err := htmlshot.DeviceViewport(*device, *landscape)
		if err != nil {
			return opts, err
		}
		return opts.WithViewport(v), nil
	}

	v := htmlshot.NewViewportBuilder().
		Width(*width).
		Height(*height).
		DeviceScaleFactor(*scale).
		Landscape(*landscape).
		Build()
	return opts.WithViewport(v), nil
}
