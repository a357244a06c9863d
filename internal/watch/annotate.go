package watch

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

var boxColor = color.RGBA{G: 255, A: 255}

const (
	boxThickness = 2
	fontScale    = 0.45
	labelOffset  = 10
)

// Annotate draws the detections directly into the frame: a green rectangle
// per box with its label just above the top edge. Labels and boxes align by
// index; extra boxes without a label are still drawn.
func Annotate(frame *gocv.Mat, boxes []image.Rectangle, labels []string) {
	for i, box := range boxes {
		gocv.Rectangle(frame, box, boxColor, boxThickness)
		if i < len(labels) && labels[i] != "" {
			gocv.PutText(frame, labels[i], labelOrigin(box), gocv.FontHersheySimplex, fontScale, boxColor, boxThickness)
		}
	}
}

// labelOrigin anchors the text above the box. A box close to the top of the
// frame would push the label off screen, so it drops inside the box instead.
func labelOrigin(box image.Rectangle) image.Point {
	y := box.Min.Y - labelOffset
	if y <= labelOffset {
		y = box.Min.Y + labelOffset
	}
	return image.Pt(box.Min.X, y)
}
