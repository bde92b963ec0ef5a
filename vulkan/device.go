package vulkan

import (
	"context"
	"log/slog"

	"github.com/cockroachdb/errors"
	"github.com/vkngwrapper/core/v3/common"
	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/rendergraph/gfx"
	"github.com/vkngwrapper/rendergraph/vam"
)

// Device creates the buffers and images a render graph materialises. Memory for every resource comes
// from a vam.Allocator and is bound before the resource is returned.
type Device struct {
	logger    *slog.Logger
	driver    core1_0.DeviceDriver
	allocator *vam.Allocator
}

var _ gfx.Device = &Device{}

// NewDevice creates a Device that allocates through allocator using allocator's driver
func NewDevice(logger *slog.Logger, allocator *vam.Allocator) (*Device, error) {
	if logger == nil {
		return nil, errors.New("vulkan.NewDevice requires a logger")
	}
	if allocator == nil {
		return nil, errors.New("vulkan.NewDevice requires an allocator")
	}

	return &Device{
		logger:    logger,
		driver:    allocator.Driver(),
		allocator: allocator,
	}, nil
}

func (d *Device) Allocator() *vam.Allocator { return d.allocator }

func (d *Device) CreateBuffer(description gfx.BufferDescription) (gfx.Buffer, error) {
	if description.Size <= 0 {
		return nil, errors.Newf("attempted to create a buffer of %d bytes", description.Size)
	}

	handle, res, err := d.driver.CreateBuffer(nil, core1_0.BufferCreateInfo{
		Size:  description.Size,
		Usage: core1_0.BufferUsageFlags(description.Usage),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create a buffer of %d bytes (%s)", description.Size, res)
	}

	allocation, err := d.allocator.AllocateMemoryForBuffer(handle, bufferMemoryFlags(description))
	if err != nil {
		d.driver.DestroyBuffer(handle, nil)
		return nil, errors.Wrapf(err, "failed to allocate memory for a buffer of %d bytes", description.Size)
	}

	d.logger.LogAttrs(context.Background(), slog.LevelDebug, "vulkan::Device::CreateBuffer",
		slog.Int("size", description.Size),
		slog.String("memoryFlags", bufferMemoryFlags(description).String()),
		slog.Int("memoryType", allocation.MemoryTypeIndex()),
	)

	return &Buffer{
		handle:     handle,
		allocation: allocation,
		size:       description.Size,
	}, nil
}

func (d *Device) DestroyBuffer(buffer gfx.Buffer) error {
	vkBuffer, ok := buffer.(*Buffer)
	if !ok || vkBuffer == nil {
		return errors.Newf("vulkan.Device cannot destroy a buffer of type %T", buffer)
	}
	if vkBuffer.allocation == nil {
		return errors.New("attempted to destroy a buffer that was already destroyed")
	}

	d.driver.DestroyBuffer(vkBuffer.handle, nil)
	err := vkBuffer.allocation.Free()
	vkBuffer.allocation = nil
	return err
}

func (d *Device) CreateImage(description gfx.AttachmentDescription) (gfx.Image, error) {
	if description.Extent.Width <= 0 || description.Extent.Height <= 0 {
		return nil, errors.Newf("attempted to create a %dx%d image", description.Extent.Width, description.Extent.Height)
	}

	image := &Image{
		format:      description.Format,
		extent:      description.Extent,
		mipLevels:   max(description.MipLevels, 1),
		arrayLayers: max(description.ArrayLayers, 1),
	}

	var res common.VkResult
	var err error
	image.handle, res, err = d.driver.CreateImage(nil, core1_0.ImageCreateInfo{
		ImageType: core1_0.ImageType2D,
		Extent: core1_0.Extent3D{
			Width:  description.Extent.Width,
			Height: description.Extent.Height,
			Depth:  1,
		},
		MipLevels:     image.mipLevels,
		ArrayLayers:   image.arrayLayers,
		Format:        imageFormat(description.Format),
		Tiling:        core1_0.ImageTilingOptimal,
		InitialLayout: core1_0.ImageLayoutUndefined,
		Usage:         core1_0.ImageUsageFlags(description.Usage),
		SharingMode:   core1_0.SharingModeExclusive,
		Samples:       core1_0.Samples1,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create a %s image (%s)", description.Format, res)
	}

	image.allocation, err = d.allocator.AllocateMemoryForImage(image.handle, 0)
	if err != nil {
		d.driver.DestroyImage(image.handle, nil)
		return nil, errors.Wrapf(err, "failed to allocate memory for a %s image", description.Format)
	}

	viewType := core1_0.ImageViewType2D
	if image.arrayLayers > 1 {
		viewType = core1_0.ImageViewType2DArray
	}

	image.view, res, err = d.driver.CreateImageView(nil, core1_0.ImageViewCreateInfo{
		Image:            image.handle,
		ViewType:         viewType,
		Format:           imageFormat(description.Format),
		SubresourceRange: subresourceRange(image),
	})
	if err != nil {
		d.driver.DestroyImage(image.handle, nil)
		return nil, errors.CombineErrors(
			errors.Wrapf(err, "failed to create a view of a %s image (%s)", description.Format, res),
			image.allocation.Free(),
		)
	}

	d.logger.LogAttrs(context.Background(), slog.LevelDebug, "vulkan::Device::CreateImage",
		slog.String("format", description.Format.String()),
		slog.Int("width", description.Extent.Width),
		slog.Int("height", description.Extent.Height),
		slog.Int("memoryType", image.allocation.MemoryTypeIndex()),
	)

	return image, nil
}

func (d *Device) DestroyImage(image gfx.Image) error {
	vkImage, ok := image.(*Image)
	if !ok || vkImage == nil {
		return errors.Newf("vulkan.Device cannot destroy an image of type %T", image)
	}
	if vkImage.allocation == nil {
		return errors.New("attempted to destroy an image that was not created by this device or was already destroyed")
	}

	d.driver.DestroyImageView(vkImage.view, nil)
	d.driver.DestroyImage(vkImage.handle, nil)
	err := vkImage.allocation.Free()
	vkImage.allocation = nil
	return err
}
