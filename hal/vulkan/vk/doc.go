// Copyright 2025 Coalition of Freeware Developers
// SPDX-License-Identifier: MIT

// Package vk provides pure Go Vulkan bindings using goffi for FFI calls.
//
// # goffi calling convention
//
// goffi expects args[] to contain pointers to WHERE argument values are
// stored, NOT the values themselves. This applies to ALL argument types,
// including pointers:
//
//	var value uint64 = 42
//	args[i] = unsafe.Pointer(&value)  // pointer to value storage
//
//	ptr := unsafe.Pointer(&data[0])   // this IS the pointer value
//	args[i] = unsafe.Pointer(&ptr)    // pointer TO the pointer
//
// Passing &data[0] directly would make goffi interpret the data bytes as
// a memory address.
//
// # Function loading hierarchy
//
//  1. Init() loads the library and vkGetInstanceProcAddr.
//  2. Commands.LoadGlobal() resolves pre-instance functions.
//  3. Commands.LoadInstance(instance) resolves instance-level and WSI
//     functions, plus vkGetDeviceProcAddr (resolved with the instance:
//     some drivers return NULL for it at global scope).
//  4. Commands.LoadDevice(device) resolves device-level functions.
package vk
