package pansharp

const (
	// Landsat 9 OLI，LC09_L1TP_009029_20230922 元数据中的 RADIANCE_MULT/ADD
	RED_SCALE    = 9.9152e-03
	RED_OFFSET   = -49.57609
	GREEN_SCALE  = 1.2757e-02
	GREEN_OFFSET = -63.78403
	BLUE_SCALE   = 1.1769e-02
	BLUE_OFFSET  = -58.84429
	PAN_SCALE    = 1.1190e-02
	PAN_OFFSET   = -55.94908

	DEFAULT_NODATA = -9999.0

	// 各阶段输出文件前缀
	PREFIX_RADIANCE  = "radiance_"
	PREFIX_UPSCALED  = "upscaled_"
	PREFIX_SHARPENED = "pan_sharpened_"

	COMPOSITE_NAME = "final_stacked.tif"
	FILE_EXT_TIF   = ".tif"

	ZERO_POLICY_FILL   = "zero"
	ZERO_POLICY_NODATA = "nodata"
)
