/*
Package seamcarver is a content aware image resize library. It reduces the width and height
of an image by repeatedly removing the connected path of pixels (seam) with the lowest energy,
where the energy of a pixel is the magnitude of the color gradient around it.

Vertical seams are removed first. Horizontal seams are then removed as vertical seams of the
transposed image, which is transposed back once done.

The package provides a command line interface too. To check the supported flags type:

	$ seamcarver --help

In case you wish to integrate the API in a self constructed environment here is a simple example:

	package main

	import (
		"context"
		"fmt"

		"github.com/esimov/seamcarver"
	)

	func main() {
		g, err := seamcarver.FromImage(img)
		if err != nil {
			fmt.Printf("Error converting image: %s", err.Error())
			return
		}
		c := seamcarver.NewCarver(seamcarver.Options{
			WidthReduction:  100,
			HeightReduction: 20,
		})

		res, err := c.Carve(context.Background(), g)
		if err != nil {
			fmt.Printf("Error rescaling image: %s", err.Error())
		}
		_ = res.Image()
	}
*/
package seamcarver
