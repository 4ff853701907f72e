package main

// General API documentation for swaggo. Build with -tags swagger to serve it.
//
// @title           ovlink diagnostics API
// @version         1.0
// @description     Library search, binder state and metrics for the OpenVINO C API.
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http
