package service

// QRCodeService renders share links for posts as QR codes.
type QRCodeService interface {
	// PostShareURL is the link encoded into the post's QR code.
	PostShareURL(postID int64) string

	// GeneratePostQR returns a PNG image.
	GeneratePostQR(postID int64) ([]byte, error)
}
