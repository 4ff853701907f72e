package linking

// OpenVINOManifest lists the C API entry points every bind must resolve.
// A library missing any of them is rejected as a whole.
var OpenVINOManifest = []string{
	"ov_get_openvino_version",
	"ov_version_free",
	"ov_get_error_info",
	"ov_core_create",
	"ov_core_create_with_config",
	"ov_core_free",
	"ov_core_read_model",
	"ov_core_compile_model",
	"ov_core_get_available_devices",
	"ov_available_devices_free",
	"ov_model_free",
	"ov_compiled_model_free",
	"ov_compiled_model_create_infer_request",
	"ov_infer_request_infer",
	"ov_infer_request_free",
	"ov_tensor_create_from_host_ptr",
	"ov_tensor_free",
}

func manifestOrDefault(m []string) []string {
	if len(m) == 0 {
		return OpenVINOManifest
	}
	return m
}
