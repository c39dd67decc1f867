package recording

import (
	"image"

	"github.com/gogpu/compositor"
	"github.com/gogpu/compositor/textblob"
)

// CommandType identifies the type of a command.
type CommandType uint8

const (
	// State commands
	CmdSave CommandType = iota
	CmdSaveLayer
	CmdRestore
	CmdTransform
	CmdSetTransform
	CmdClipRect
	CmdClipRRect
	CmdClipPath

	// Attribute commands
	CmdSetColor
	CmdSetColorSource
	CmdSetStyle
	CmdSetStrokeWidth
	CmdSetBlendMode

	// Drawing commands
	CmdDrawColor
	CmdDrawPaint
	CmdDrawLine
	CmdDrawRect
	CmdDrawOval
	CmdDrawCircle
	CmdDrawRRect
	CmdDrawDRRect
	CmdDrawPath
	CmdDrawArc
	CmdDrawPoints
	CmdDrawVertices
	CmdDrawImage
	CmdDrawImageRect
	CmdDrawImageNine
	CmdDrawAtlas
	CmdDrawDisplayList
	CmdDrawText
	CmdDrawShadow
)

var commandTypeNames = [...]string{
	CmdSave:            "Save",
	CmdSaveLayer:       "SaveLayer",
	CmdRestore:         "Restore",
	CmdTransform:       "Transform",
	CmdSetTransform:    "SetTransform",
	CmdClipRect:        "ClipRect",
	CmdClipRRect:       "ClipRRect",
	CmdClipPath:        "ClipPath",
	CmdSetColor:        "SetColor",
	CmdSetColorSource:  "SetColorSource",
	CmdSetStyle:        "SetStyle",
	CmdSetStrokeWidth:  "SetStrokeWidth",
	CmdSetBlendMode:    "SetBlendMode",
	CmdDrawColor:       "DrawColor",
	CmdDrawPaint:       "DrawPaint",
	CmdDrawLine:        "DrawLine",
	CmdDrawRect:        "DrawRect",
	CmdDrawOval:        "DrawOval",
	CmdDrawCircle:      "DrawCircle",
	CmdDrawRRect:       "DrawRRect",
	CmdDrawDRRect:      "DrawDRRect",
	CmdDrawPath:        "DrawPath",
	CmdDrawArc:         "DrawArc",
	CmdDrawPoints:      "DrawPoints",
	CmdDrawVertices:    "DrawVertices",
	CmdDrawImage:       "DrawImage",
	CmdDrawImageRect:   "DrawImageRect",
	CmdDrawImageNine:   "DrawImageNine",
	CmdDrawAtlas:       "DrawAtlas",
	CmdDrawDisplayList: "DrawDisplayList",
	CmdDrawText:        "DrawText",
	CmdDrawShadow:      "DrawShadow",
}

// String returns the string representation of a CommandType.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// IsDraw reports whether the command produces pixels.
func (c CommandType) IsDraw() bool {
	return c >= CmdDrawColor && c <= CmdDrawShadow
}

// Command is the interface implemented by all command types.
type Command interface {
	Type() CommandType
}

// --------------------------------------------------------------------------
// State commands
// --------------------------------------------------------------------------

type SaveCommand struct{}

func (SaveCommand) Type() CommandType { return CmdSave }

// SaveLayerCommand opens an offscreen layer. Bounds is empty when the layer
// is unbounded.
type SaveLayerCommand struct {
	Bounds  compositor.Rect
	Opacity float64
}

func (SaveLayerCommand) Type() CommandType { return CmdSaveLayer }

type RestoreCommand struct{}

func (RestoreCommand) Type() CommandType { return CmdRestore }

// TransformCommand concatenates Matrix onto the current transform.
type TransformCommand struct {
	Matrix compositor.Matrix
}

func (TransformCommand) Type() CommandType { return CmdTransform }

// SetTransformCommand replaces the current transform.
type SetTransformCommand struct {
	Matrix compositor.Matrix
}

func (SetTransformCommand) Type() CommandType { return CmdSetTransform }

type ClipRectCommand struct {
	Rect compositor.Rect
}

func (ClipRectCommand) Type() CommandType { return CmdClipRect }

type ClipRRectCommand struct {
	RRect compositor.RRect
}

func (ClipRRectCommand) Type() CommandType { return CmdClipRRect }

type ClipPathCommand struct {
	Path *compositor.Path
}

func (ClipPathCommand) Type() CommandType { return CmdClipPath }

// --------------------------------------------------------------------------
// Attribute commands
// --------------------------------------------------------------------------

type SetColorCommand struct {
	Color compositor.Color
}

func (SetColorCommand) Type() CommandType { return CmdSetColor }

// SetColorSourceCommand sets or, with a nil Source, clears the color source.
type SetColorSourceCommand struct {
	Source ColorSource
}

func (SetColorSourceCommand) Type() CommandType { return CmdSetColorSource }

type SetStyleCommand struct {
	Style PaintStyle
}

func (SetStyleCommand) Type() CommandType { return CmdSetStyle }

type SetStrokeWidthCommand struct {
	Width float64
}

func (SetStrokeWidthCommand) Type() CommandType { return CmdSetStrokeWidth }

type SetBlendModeCommand struct {
	Mode BlendMode
}

func (SetBlendModeCommand) Type() CommandType { return CmdSetBlendMode }

// --------------------------------------------------------------------------
// Drawing commands
// --------------------------------------------------------------------------

// DrawColorCommand fills the clip with Color. It ignores paint attributes.
type DrawColorCommand struct {
	Color compositor.Color
	Mode  BlendMode
}

func (DrawColorCommand) Type() CommandType { return CmdDrawColor }

type DrawPaintCommand struct{}

func (DrawPaintCommand) Type() CommandType { return CmdDrawPaint }

type DrawLineCommand struct {
	P0, P1 compositor.Point
}

func (DrawLineCommand) Type() CommandType { return CmdDrawLine }

type DrawRectCommand struct {
	Rect compositor.Rect
}

func (DrawRectCommand) Type() CommandType { return CmdDrawRect }

type DrawOvalCommand struct {
	Bounds compositor.Rect
}

func (DrawOvalCommand) Type() CommandType { return CmdDrawOval }

type DrawCircleCommand struct {
	Center compositor.Point
	Radius float64
}

func (DrawCircleCommand) Type() CommandType { return CmdDrawCircle }

type DrawRRectCommand struct {
	RRect compositor.RRect
}

func (DrawRRectCommand) Type() CommandType { return CmdDrawRRect }

type DrawDRRectCommand struct {
	Outer, Inner compositor.RRect
}

func (DrawDRRectCommand) Type() CommandType { return CmdDrawDRRect }

type DrawPathCommand struct {
	Path *compositor.Path
}

func (DrawPathCommand) Type() CommandType { return CmdDrawPath }

type DrawArcCommand struct {
	Oval               compositor.Rect
	StartDeg, SweepDeg float64
	UseCenter          bool
}

func (DrawArcCommand) Type() CommandType { return CmdDrawArc }

type DrawPointsCommand struct {
	Mode   PointMode
	Points []compositor.Point
}

func (DrawPointsCommand) Type() CommandType { return CmdDrawPoints }

type DrawVerticesCommand struct {
	Vertices *Vertices
	Mode     BlendMode
}

func (DrawVerticesCommand) Type() CommandType { return CmdDrawVertices }

// DrawImageCommand draws Image at TopLeft. WithPaint reports whether the
// current paint attributes apply.
type DrawImageCommand struct {
	Image     image.Image
	TopLeft   compositor.Point
	WithPaint bool
}

func (DrawImageCommand) Type() CommandType { return CmdDrawImage }

type DrawImageRectCommand struct {
	Image     image.Image
	Src, Dst  compositor.Rect
	WithPaint bool
}

func (DrawImageRectCommand) Type() CommandType { return CmdDrawImageRect }

type DrawImageNineCommand struct {
	Image     image.Image
	Center    image.Rectangle
	Dst       compositor.Rect
	WithPaint bool
}

func (DrawImageNineCommand) Type() CommandType { return CmdDrawImageNine }

type DrawAtlasCommand struct {
	Atlas     image.Image
	Xforms    []RSTransform
	Tex       []compositor.Rect
	Colors    []compositor.Color
	Mode      BlendMode
	WithPaint bool
}

func (DrawAtlasCommand) Type() CommandType { return CmdDrawAtlas }

// DrawDisplayListCommand draws a nested recording with an opacity multiplier.
type DrawDisplayListCommand struct {
	Recording *Recording
	Opacity   float64
}

func (DrawDisplayListCommand) Type() CommandType { return CmdDrawDisplayList }

type DrawTextCommand struct {
	Blob *textblob.Blob
	X, Y float64
}

func (DrawTextCommand) Type() CommandType { return CmdDrawText }

// DrawShadowCommand draws the shadow Path would cast at Elevation. Color is
// used directly and ignores paint attributes.
type DrawShadowCommand struct {
	Path                *compositor.Path
	Color               compositor.Color
	Elevation           float64
	TransparentOccluder bool
	DevicePixelRatio    float64
}

func (DrawShadowCommand) Type() CommandType { return CmdDrawShadow }
