package brayns

import (
	"context"
	"fmt"

	"github.com/Vasu1712/brayns-remote/internal/models"
)

// SetFovCamera pushes the camera to the server.
func (c *Client) SetFovCamera(ctx context.Context, camera *models.Camera) error {
	body, err := camera.Serialize()
	if err != nil {
		return fmt.Errorf("serialize camera: %w", err)
	}
	return c.put(ctx, c.urls.fovCamera, body)
}

// GetFovCamera reads the server's camera into camera. If the server cannot
// be reached camera is left as it was.
func (c *Client) GetFovCamera(ctx context.Context, camera *models.Camera) error {
	data, err := c.get(ctx, c.urls.fovCamera)
	if err != nil || data == nil {
		return err
	}
	if err := camera.Deserialize(data); err != nil {
		return fmt.Errorf("decode camera: %w", err)
	}
	return nil
}

// SetMaterial pushes the material into the slot it carries.
func (c *Client) SetMaterial(ctx context.Context, material models.Material) error {
	body, err := material.Serialize()
	if err != nil {
		return fmt.Errorf("serialize material: %w", err)
	}
	return c.put(ctx, c.urls.material, body)
}

// SetMaterialAt pushes the material into slot index, whatever slot it carries.
func (c *Client) SetMaterialAt(ctx context.Context, index int, material models.Material) error {
	return c.SetMaterial(ctx, material.WithIndex(index))
}

// SetTransferFunction pushes the transfer function in the configured encoding.
func (c *Client) SetTransferFunction(ctx context.Context, tf *models.TransferFunction) error {
	if c.profile == ProfileLegacy {
		return ErrUnsupported
	}
	var (
		body []byte
		err  error
	)
	switch c.tfEncoding {
	case TFLastChannel:
		body, err = tf.SerializeLastChannel()
	default:
		body, err = tf.Serialize()
	}
	if err != nil {
		return fmt.Errorf("serialize transfer function: %w", err)
	}
	return c.put(ctx, c.urls.transferFunction, body)
}
