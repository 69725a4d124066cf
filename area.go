package tinygif

// ImageArea identifies a rectangle in the logical screen: a contiguous
// run of scan lines, width pixels wide, starting at (xpos, ypos).
type ImageArea struct {
	Xpos, Ypos, Width, Height uint16
}

// GraphicsControlExtension carries the optional per-frame timing and
// transparency information from a GIF graphics control extension
// block (GIF89a §23).
type GraphicsControlExtension struct {
	MillisDelay       uint32
	HasTransparency   bool
	TransparencyIndex byte
}

// FrameMetadata is everything the container reader (C6) extracts about
// one frame before handing the image-data sub-blocks to the frame
// decoder (C5).
type FrameMetadata struct {
	FrameArea           ImageArea
	HasLocalColorTable  bool
	LocalColorTableSize int
	Extension           *GraphicsControlExtension
}
