package codegen

// intArrayHeader and intArraySource are the fixed array-support pair
// emitted once per compile (spec.md §4.4): a bounds-carrying int array with
// a calloc-backed, zero-initialized allocator.
const intArrayHeader = `#ifndef __INT_ARRAY_H
#define __INT_ARRAY_H

typedef struct __int_array {
	int length;
	int* data;
} __int_array;

__int_array* $_new___int_array(int size);

#endif /* __INT_ARRAY_H */
`

const intArraySource = `#include <stdlib.h>
#include "__int_array.h"

__int_array* $_new___int_array(int size) {
	__int_array* arr = (__int_array*) malloc(sizeof(__int_array));
	arr->length = size;
	arr->data = (int*) calloc((size_t) size, sizeof(int));
	return arr;
}
`
