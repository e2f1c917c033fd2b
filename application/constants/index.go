package constants

// facemark response codes
// these consist of 4 digit numbers the client uses to route the user
// to the right screen after a request

var ACCOUNT_CREATED uint = 9110            // take the user to the login page
var ACCOUNT_EXISTS uint = 9120             // take the user to the login page
var FACE_NOT_ENROLLED uint = 4210          // prompt the user to capture a reference image
var FACE_MISMATCH uint = 4220              // ask the user to retake the picture
var ATTENDANCE_ALREADY_MARKED uint = 4230  // show the existing record for the day
var NO_FACE_IN_IMAGE uint = 4240           // ask the user to retake the picture
var INVALID_IMAGE_PAYLOAD uint = 4250      // client sent bytes that do not decode

var PERSON_STATUS_ACTIVE = "active"
var PERSON_STATUS_INACTIVE = "inactive"
var PERSON_STATUS_DELETED = "deleted"

var ATTENDANCE_STATUS_PRESENT = "Present"
var ATTENDANCE_STATUS_ABSENT = "Absent"

var ROLE_STUDENT = "student"
var ROLE_TEACHER = "teacher"

var DEFAULT_DEPARTMENT = "General"

var SUPPORT_EMAIL = "help@facemark.io"
